package service

import (
	"context"

	"warehouse/internal/repository"
	"warehouse/pkg/apperror"
)

// UserService exposes the reference listing of active users
type UserService interface {
	ListUsers(ctx context.Context, page, limit int) ([]UserView, int64, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserView, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	users, total, err := s.repo.ListActive(ctx, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return views, total, nil
}
