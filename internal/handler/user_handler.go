package handler

import (
	"net/http"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"
	"warehouse/pkg/pagination"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService         service.UserService
	notificationService service.NotificationService
	activityService     service.ActivityService
}

func NewUserHandler(
	userService service.UserService,
	notificationService service.NotificationService,
	activityService service.ActivityService,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		notificationService: notificationService,
		activityService:     activityService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/users", middleware.RequireAnyRole(), h.ListUsers)
	router.GET("/api/notifications", middleware.RequireAnyRole(), h.ListNotifications)
	router.GET("/api/activity", middleware.RequireRole(model.RoleAdmin), h.ListActivity)
}

// ListUsers handles GET /api/users, the active-user reference listing
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := pagination.Parse(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"users": users,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// ListNotifications handles GET /api/notifications for the current user
func (h *UserHandler) ListNotifications(c *gin.Context) {
	notifications, err := h.notificationService.ListForUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(notifications))
}

// ListActivity handles GET /api/activity (admin only)
// @Summary      List activity log
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/activity [get]
func (h *UserHandler) ListActivity(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.activityService.ListActivity(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{
		"activity": entries,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}
