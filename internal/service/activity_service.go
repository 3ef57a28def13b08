package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
	"github.com/catebros/lostfound/internal/repository"
)

type ActivityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// ListRange returns audit entries recorded between from and to,
// inclusive, oldest first.
func (s *ActivityService) ListRange(ctx context.Context, from, to time.Time) ([]domain.ActivityLog, error) {
	entries, err := s.activityRepo.ListRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ActivityLog{}
	}
	return entries, nil
}

// recordActivity appends an audit entry. Audit writes are best-effort:
// a failure is logged but never fails the operation being audited.
func recordActivity(ctx context.Context, repo repository.ActivityRepository, userID uuid.UUID, action, details string) {
	entry := &domain.ActivityLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("activity: recording %s for %s: %v", action, userID, err)
	}
}
