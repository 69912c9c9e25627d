package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lemusAndy13/kanban-academico/internal/models"
	appErrors "github.com/lemusAndy13/kanban-academico/pkg/errors"
)

type activityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	ListForMember(ctx context.Context, userID int64, filter models.ActivityFilter) ([]models.Activity, error)
}

// ActivityService records mutation side effects and serves the feed.
type ActivityService struct {
	repo   activityRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewActivityService constructs an ActivityService instance.
func NewActivityService(repo activityRepository, cache *CacheService, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, cache: cache, logger: logger}
}

// Record appends an activity row and invalidates cached feeds.
func (s *ActivityService) Record(ctx context.Context, activity *models.Activity) error {
	if err := s.repo.Create(ctx, activity); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record activity")
	}
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "activities:*")
	}
	return nil
}

// List returns the activity feed for the caller, newest first, served from
// cache when possible.
func (s *ActivityService) List(ctx context.Context, userID int64, filter models.ActivityFilter) ([]models.Activity, error) {
	key := feedCacheKey(userID, filter)

	var cached []models.Activity
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	activities, err := s.repo.ListForMember(ctx, userID, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activities")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, activities, 0)
	}

	return activities, nil
}

func feedCacheKey(userID int64, filter models.ActivityFilter) string {
	board, card := int64(0), int64(0)
	if filter.BoardID != nil {
		board = *filter.BoardID
	}
	if filter.CardID != nil {
		card = *filter.CardID
	}
	return fmt.Sprintf("activities:u%d:b%d:c%d", userID, board, card)
}
