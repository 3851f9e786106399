package handler

import (
	"strconv"

	"warehouse/pkg/apperror"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

// fail translates an application error into the HTTP status and envelope
// the API contract promises. Unclassified errors surface as a masked 500.
func fail(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), response.Error(apperror.UserMessage(err)))
}

// pathID parses a numeric :id path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("invalid %s %q", name, raw)
	}
	return uint(id), nil
}
