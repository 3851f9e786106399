package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warehouse/internal/database"
	"warehouse/internal/model"
	"warehouse/internal/repository"
)

func setupAuthTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	InitAuth(repository.NewUserRepository(db))

	router := gin.New()
	router.GET("/any", RequireAnyRole(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	router.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return db, router
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string, active bool) model.User {
	t.Helper()
	user := model.User{Username: username, FullName: username, Password: "x", Role: role, IsActive: active}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func signTestToken(t *testing.T, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRoleRejectsMissingOrMalformedHeader(t *testing.T) {
	_, router := setupAuthTest(t)

	w := doRequest(router, "/any", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/any", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "/any", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAcceptsValidToken(t *testing.T) {
	db, router := setupAuthTest(t)
	user := createTestUser(t, db, "chef", model.RoleStaff, true)

	w := doRequest(router, "/any", signTestToken(t, user.ID))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), fmt.Sprintf(`"user_id":%d`, user.ID))
}

func TestRequireRoleForbidsInsufficientRole(t *testing.T) {
	db, router := setupAuthTest(t)
	staff := createTestUser(t, db, "chef", model.RoleStaff, true)
	admin := createTestUser(t, db, "admin", model.RoleAdmin, true)

	w := doRequest(router, "/admin", signTestToken(t, staff.ID))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, "/admin", signTestToken(t, admin.ID))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole401ForDeactivatedUser(t *testing.T) {
	db, router := setupAuthTest(t)
	user := createTestUser(t, db, "former", model.RoleStaff, true)
	token := signTestToken(t, user.ID)

	w := doRequest(router, "/any", token)
	require.Equal(t, http.StatusOK, w.Code)

	// Deactivation takes effect on the next call even with a live token
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	w = doRequest(router, "/any", token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleRejectsExpiredToken(t *testing.T) {
	db, router := setupAuthTest(t)
	user := createTestUser(t, db, "chef", model.RoleStaff, true)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString(GetJWTSecret())
	require.NoError(t, err)

	w := doRequest(router, "/any", signed)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
