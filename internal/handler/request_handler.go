package handler

import (
	"net/http"
	"time"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"
	"warehouse/pkg/apperror"
	"warehouse/pkg/pagination"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests")
	{
		requests.GET("", middleware.RequireAnyRole(), h.ListRequests)
		requests.GET("/:id", middleware.RequireAnyRole(), h.GetRequest)
		requests.POST("", middleware.RequireAnyRole(), h.CreateRequest)
		requests.PATCH("/:id/status", middleware.RequireRole(model.RoleManager, model.RoleAdmin), h.UpdateStatus)
	}
}

// ListRequests handles GET /api/requests with optional filters
// @Summary      List requests
// @Description  Lists requests filtered by status, department and creation date range, newest first
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Status filter (pending|approved|rejected)"
// @Param        department  query  string  false  "Department name filter"
// @Param        from_date   query  string  false  "Inclusive lower creation bound (RFC3339 or YYYY-MM-DD)"
// @Param        to_date     query  string  false  "Inclusive upper creation bound (RFC3339 or YYYY-MM-DD)"
// @Success      200  {object}  response.Envelope
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	params := pagination.Parse(c)
	filter := service.ListRequestsFilter{
		Status:     c.Query("status"),
		Department: c.Query("department"),
		Page:       params.Page,
		Limit:      params.Limit,
	}

	var err error
	if filter.From, err = parseDateBound(c.Query("from_date"), false); err != nil {
		fail(c, err)
		return
	}
	if filter.To, err = parseDateBound(c.Query("to_date"), true); err != nil {
		fail(c, err)
		return
	}

	requests, total, err := h.requestService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"requests": requests,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetRequest handles GET /api/requests/:id
// @Summary      Get one request
// @Description  Fetches a request with requester, approver and its ordered line items
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Request ID"
// @Success      200  {object}  response.Envelope{data=service.RequestDetail}
// @Failure      404  {object}  response.Envelope
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	detail, err := h.requestService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(detail))
}

// CreateRequest handles POST /api/requests
// @Summary      Create request
// @Description  Creates a pending request with its line items in one transaction
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateRequestInput  true  "Request payload"
// @Success      201      {object}  response.Envelope{data=service.RequestDetail}
// @Failure      400      {object}  response.Envelope
// @Router       /api/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var in service.CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid request payload: "+err.Error()))
		return
	}

	detail, err := h.requestService.Create(c.Request.Context(), middleware.CurrentUserID(c), c.ClientIP(), in)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(detail))
}

// UpdateStatus handles PATCH /api/requests/:id/status (manager or admin)
// @Summary      Approve or reject a request
// @Description  Transitions a pending request to approved or rejected; terminal requests cannot be re-decided
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                      true  "Request ID"
// @Param        payload  body      service.TransitionInput  true  "New status"
// @Success      200      {object}  response.Envelope{data=service.RequestDetail}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /api/requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		fail(c, err)
		return
	}

	var in service.TransitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("status must be 'approved' or 'rejected'"))
		return
	}

	detail, err := h.requestService.Transition(c.Request.Context(), id, in.Status, middleware.CurrentUserID(c), c.ClientIP())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(detail))
}

// parseDateBound accepts RFC3339 timestamps or bare dates. Bare dates used
// as an upper bound stretch to end of day so the bound stays inclusive.
func parseDateBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperror.Validation("invalid date %q, expected RFC3339 or YYYY-MM-DD", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
