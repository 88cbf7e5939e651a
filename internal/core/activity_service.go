package core

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// DefaultFeedLimit caps the activity feed when the caller asks for more
// or does not say.
const DefaultFeedLimit = 50

// activityService implements the ActivityService interface.
type activityService struct {
	activityRepo db.ActivityRepository
	feedLimit    int
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService instance. feedLimit
// bounds every feed read; non-positive values fall back to the default.
func NewActivityService(ar db.ActivityRepository, feedLimit int, logger *zap.Logger) ActivityService {
	if feedLimit <= 0 {
		feedLimit = DefaultFeedLimit
	}
	return &activityService{
		activityRepo: ar,
		feedLimit:    feedLimit,
		logger:       logger,
	}
}

// Recent returns the feed newest first. The repository bounds the fetch
// but does not promise an order, so sorting and capping happen here.
func (s *activityService) Recent(ctx context.Context, limit int) ([]*models.Activity, error) {
	if limit <= 0 || limit > s.feedLimit {
		limit = s.feedLimit
	}
	activities, err := s.activityRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	sortFeed(activities)
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// sortFeed orders entries newest first. The sort is stable so entries
// sharing a timestamp keep their stored order.
func sortFeed(activities []*models.Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp > activities[j].Timestamp
	})
}

func (s *activityService) ClearAll(ctx context.Context, actor *models.UserProfile) error {
	if !actor.Role.AtLeast(models.RoleAdmin) {
		return ErrForbidden
	}
	if err := s.activityRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear activity log: %w", err)
	}
	s.logger.Info("Activity log cleared", zap.String("actor", actor.UID))
	return nil
}
