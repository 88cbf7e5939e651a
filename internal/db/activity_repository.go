package db

import (
	"context"
	"errors"
	"fmt"

	rtdb "firebase.google.com/go/v4/db"

	"umbrella-backend-go/internal/models"
)

const activitiesPath = "activities"

// rtdbActivityRepository implements ActivityRepository over the
// append-only tree at activities/{pushKey}.
type rtdbActivityRepository struct {
	client *rtdb.Client
}

// NewRTDBActivityRepository creates a new activity repository.
func NewRTDBActivityRepository(client *rtdb.Client) ActivityRepository {
	if client == nil {
		panic("Realtime Database client is not initialized for ActivityRepository")
	}
	return &rtdbActivityRepository{client: client}
}

// Append pushes a new entry under a generated key. The entry's ID field is
// left empty on the stored value; the push key is the identity.
func (r *rtdbActivityRepository) Append(ctx context.Context, activity *models.Activity) (string, error) {
	if activity == nil {
		return "", errors.New("activity is required for Append")
	}
	entry := *activity
	entry.ID = ""
	ref, err := r.client.NewRef(activitiesPath).Push(ctx, &entry)
	if err != nil {
		return "", fmt.Errorf("failed to append activity: %w", err)
	}
	return ref.Key, nil
}

// List fetches up to limit entries, newest first by the server-side
// timestamp index. LimitToLast bounds the payload; a full feed fetch
// against the free tier is the expensive part, not the decode.
func (r *rtdbActivityRepository) List(ctx context.Context, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive for List")
	}

	query := r.client.NewRef(activitiesPath).OrderByChild("timestamp").LimitToLast(limit)
	nodes, err := query.GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	activities := make([]*models.Activity, 0, len(nodes))
	for _, node := range nodes {
		var a models.Activity
		if err := node.Unmarshal(&a); err != nil {
			return nil, fmt.Errorf("failed to decode activity %s: %w", node.Key(), err)
		}
		a.ID = node.Key()
		activities = append(activities, &a)
	}
	return activities, nil
}

// Clear deletes the whole activity log.
func (r *rtdbActivityRepository) Clear(ctx context.Context) error {
	if err := r.client.NewRef(activitiesPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	return nil
}
