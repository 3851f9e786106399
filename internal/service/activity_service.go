package service

import (
	"context"
	"time"

	"warehouse/internal/repository"
	"warehouse/pkg/apperror"
)

type ActivityLogView struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id,omitempty"`
	Username  string `json:"username"`
	Action    string `json:"action"`
	IPAddress string `json:"ip_address,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ActivityService interface {
	ListActivity(ctx context.Context, page, limit int) ([]ActivityLogView, int64, error)
}

type activityService struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) ListActivity(ctx context.Context, page, limit int) ([]ActivityLogView, int64, error) {
	entries, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	views := make([]ActivityLogView, 0, len(entries))
	for _, entry := range entries {
		view := ActivityLogView{
			ID:        entry.ID,
			Action:    entry.Action,
			IPAddress: entry.IPAddress,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
			Username:  "system",
		}
		if entry.UserID != nil {
			view.UserID = *entry.UserID
		}
		if entry.User != nil {
			view.Username = entry.User.Username
		}
		views = append(views, view)
	}

	return views, total, nil
}
