package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// --- DTOs ---

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserView is the safe projection of a user returned by the API
type UserView struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// --- Interface ---

type AuthService interface {
	Login(ctx context.Context, in LoginInput, ip string) (*LoginResult, error)
	CurrentUser(ctx context.Context, userID uint) (*UserView, error)
}

type authService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
}

func NewAuthService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository) AuthService {
	return &authService{userRepo: userRepo, activityRepo: activityRepo}
}

// Login verifies credentials against the stored bcrypt hash and issues a
// 24h bearer token. Unknown usernames and wrong passwords get the same
// answer on purpose.
func (s *authService) Login(ctx context.Context, in LoginInput, ip string) (*LoginResult, error) {
	user, err := s.userRepo.GetActiveByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Auth("invalid username or password")
		}
		return nil, apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperror.Auth("invalid username or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.Username,
		"role":     user.Role,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	userRef := user.ID
	if logErr := s.activityRepo.Create(ctx, &model.ActivityLog{
		UserID:    &userRef,
		Action:    model.ActionLogin,
		IPAddress: ip,
	}); logErr != nil {
		return nil, apperror.Internal(logErr)
	}

	view := toUserView(user)
	return &LoginResult{Token: tokenString, User: view}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID uint) (*UserView, error) {
	user, err := s.userRepo.GetActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user %d not found", userID)
		}
		return nil, apperror.Internal(err)
	}
	view := toUserView(user)
	return &view, nil
}

func toUserView(user *model.User) UserView {
	view := UserView{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		Email:    user.Email,
		Phone:    user.Phone,
	}
	if user.Department != nil {
		view.Department = user.Department.Name
	}
	return view
}
