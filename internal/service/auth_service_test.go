package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"
)

func seedLoginUser(t *testing.T, db *gorm.DB, username, password string, active bool) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := model.User{
		Username: username,
		FullName: "Test User",
		Password: string(hash),
		Role:     model.RoleStaff,
		IsActive: active,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginIssuesTokenAndLogsActivity(t *testing.T) {
	db := setupTestDB(t)
	user := seedLoginUser(t, db, "chef", "chef123", true)
	service := NewAuthService(repository.NewUserRepository(db), repository.NewActivityRepository(db))

	result, err := service.Login(context.Background(), LoginInput{Username: "chef", Password: "chef123"}, "192.0.2.1")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, user.ID, result.User.ID)
	require.Equal(t, model.RoleStaff, result.User.Role)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return middleware.GetJWTSecret(), nil
	})
	require.NoError(t, err)
	require.Equal(t, "chef", claims["username"])
	require.Equal(t, model.RoleStaff, claims["role"])
	require.NotEmpty(t, claims["jti"])

	var logs []model.ActivityLog
	require.NoError(t, db.Where("action = ?", model.ActionLogin).Find(&logs).Error)
	require.Len(t, logs, 1)
	require.Equal(t, "192.0.2.1", logs[0].IPAddress)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedLoginUser(t, db, "chef", "chef123", true)
	service := NewAuthService(repository.NewUserRepository(db), repository.NewActivityRepository(db))

	_, err := service.Login(context.Background(), LoginInput{Username: "chef", Password: "wrong"}, "")
	require.Error(t, err)
	require.Equal(t, apperror.KindAuth, apperror.KindOf(err))

	// No activity entry for the failed attempt
	var count int64
	require.NoError(t, db.Model(&model.ActivityLog{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestLoginRejectsUnknownAndInactiveUsers(t *testing.T) {
	db := setupTestDB(t)
	seedLoginUser(t, db, "ghost", "ghost123", false)
	service := NewAuthService(repository.NewUserRepository(db), repository.NewActivityRepository(db))

	_, err := service.Login(context.Background(), LoginInput{Username: "nobody", Password: "x"}, "")
	require.Error(t, err)
	require.Equal(t, apperror.KindAuth, apperror.KindOf(err))

	_, err = service.Login(context.Background(), LoginInput{Username: "ghost", Password: "ghost123"}, "")
	require.Error(t, err)
	require.Equal(t, apperror.KindAuth, apperror.KindOf(err))
}

func TestCurrentUserHidesPassword(t *testing.T) {
	db := setupTestDB(t)
	user := seedLoginUser(t, db, "chef", "chef123", true)
	service := NewAuthService(repository.NewUserRepository(db), repository.NewActivityRepository(db))

	view, err := service.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "chef", view.Username)
	require.Equal(t, "Test User", view.FullName)

	_, err = service.CurrentUser(context.Background(), 9999)
	require.Error(t, err)
	require.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
