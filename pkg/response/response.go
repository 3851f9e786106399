package response

// Envelope is the standard API response shape. Every endpoint, success or
// failure, answers with this envelope; Data and Message are mutually
// optional. The shape is part of the external contract consumed by the
// frontend.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Success returns a success envelope wrapping the data
func Success(data interface{}) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
	}
}

// SuccessMessage returns a success envelope carrying only a message
func SuccessMessage(message string) Envelope {
	return Envelope{
		Success: true,
		Message: message,
	}
}

// Error returns a failure envelope wrapping the user-facing message
func Error(message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
	}
}
