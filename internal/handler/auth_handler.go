package handler

import (
	"net/http"

	"warehouse/internal/middleware"
	"warehouse/internal/service"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the auth endpoints to the gin RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.RequireAnyRole(), h.Me)
	}
}

// Login handles POST /api/auth/login to exchange credentials for a token
// @Summary      Login
// @Description  Authenticates a user by username and password, returning a bearer token and the user profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginInput  true  "Login Credentials"
// @Success      200      {object}  response.Envelope{data=service.LoginResult}
// @Failure      400      {object}  response.Envelope
// @Failure      401      {object}  response.Envelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("username and password are required"))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), in, c.ClientIP())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Me handles GET /api/auth/me to resolve the bearer token to the current user
// @Summary      Get current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=service.UserView}
// @Failure      401  {object}  response.Envelope
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(user))
}
