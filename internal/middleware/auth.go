package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireRole
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
	CtxUser     = "user"
)

// GetJWTSecret returns the token signing secret. The fallback value exists
// for local development only; release mode refuses to start without a real
// secret.
func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only, DO NOT use in production
	}
	return []byte(secret)
}

// userRepo resolves token subjects to live user rows, set via InitAuth
var userRepo repository.UserRepository

// InitAuth sets the user repository used by RequireRole
func InitAuth(repo repository.UserRepository) {
	userRepo = repo
}

// ParseToken validates a raw JWT string and returns its claims
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// RequireRole validates the bearer token, resolves its subject to an active
// user row, and checks the user's role against the allowed list. Each route
// declares the roles it requires; this single function evaluates them.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("authorization is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid authorization format, expected 'Bearer <token>'"))
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token"))
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("invalid token subject"))
			return
		}

		// Tokens outlive account changes, so the subject is resolved to a
		// live active-user record on every protected call.
		user, err := userRepo.GetActiveByID(c.Request.Context(), uint(userID))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("user not found or deactivated"))
			return
		}

		roleAllowed := false
		for _, role := range allowedRoles {
			if user.Role == role {
				roleAllowed = true
				break
			}
		}
		if !roleAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("access denied: insufficient permissions"))
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxUserRole, user.Role)
		c.Set(CtxUser, user)

		c.Next()
	}
}

// RequireAnyRole allows any of the fixed role set
func RequireAnyRole() gin.HandlerFunc {
	return RequireRole(model.RoleStaff, model.RoleManager, model.RoleAdmin)
}

// CurrentUserID returns the authenticated user's id from the gin context
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentUser returns the authenticated user record from the gin context
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
