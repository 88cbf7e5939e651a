package db

import (
	"context"

	"umbrella-backend-go/internal/models"
)

// UmbrellaRepository defines the storage operations for umbrella records.
type UmbrellaRepository interface {
	Get(ctx context.Context, id int) (*models.Umbrella, error)
	List(ctx context.Context) ([]*models.Umbrella, error)
	// Set overwrites a record unconditionally (admin paths only).
	Set(ctx context.Context, umbrella *models.Umbrella) error
	// Transact applies fn to the current record inside a database
	// transaction and commits the returned value. If fn returns an error
	// the transaction is aborted and nothing is written; concurrent
	// writers therefore fail deterministically instead of last-write-wins.
	Transact(ctx context.Context, id int, fn func(current models.Umbrella) (models.Umbrella, error)) (*models.Umbrella, error)
	// Seed writes the given defaults for ids that have no record yet and
	// leaves existing records untouched. Returns the number created.
	Seed(ctx context.Context, defaults []*models.Umbrella) (int, error)
}

// ActivityRepository defines the storage operations for the append-only
// activity log.
type ActivityRepository interface {
	// Append pushes a new entry and returns its generated key.
	Append(ctx context.Context, activity *models.Activity) (string, error)
	// List returns up to limit entries. Callers must not rely on order;
	// the feed ordering is applied in the core layer.
	List(ctx context.Context, limit int) ([]*models.Activity, error)
	// Clear removes the whole log. Admin-only; guarded by the caller.
	Clear(ctx context.Context) error
}

// UserRepository defines the storage operations for user profiles.
type UserRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	List(ctx context.Context) ([]*models.UserProfile, error)
	Set(ctx context.Context, profile *models.UserProfile) error
	// Update applies a partial update to the profile record.
	Update(ctx context.Context, uid string, fields map[string]interface{}) error
	Delete(ctx context.Context, uid string) error
}

// PushSubscriptionRepository defines the storage operations for web-push
// subscriptions.
type PushSubscriptionRepository interface {
	// Save upserts a subscription keyed by its endpoint.
	Save(ctx context.Context, sub *models.PushSubscription) error
	ListByZone(ctx context.Context, zone models.Zone) ([]*models.PushSubscription, error)
	Delete(ctx context.Context, id string) error
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}
