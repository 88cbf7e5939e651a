package core

import (
	"context"
	"time"

	"umbrella-backend-go/internal/models"
)

// UmbrellaService defines the lending workflows over the fixed fleet.
type UmbrellaService interface {
	// Seed creates any missing umbrella records with their defaults and
	// returns how many were created. Existing records are never touched.
	Seed(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*models.Umbrella, error)
	Get(ctx context.Context, id int) (*models.Umbrella, error)
	// Borrow lends an available umbrella to the calling user. Fails with
	// ErrUmbrellaNotAvailable if it is already on loan, including when a
	// concurrent borrow wins the race.
	Borrow(ctx context.Context, actor *models.UserProfile, id int) (*models.Umbrella, error)
	// Return puts a borrowed umbrella back in its home zone. Only the
	// borrower may return it.
	Return(ctx context.Context, actor *models.UserProfile, id int) (*models.Umbrella, error)
	// ForceReturnAll returns every borrowed umbrella and logs one
	// admin_update entry per umbrella. Admin or above.
	ForceReturnAll(ctx context.Context, actor *models.UserProfile) (int, error)
	// ResetSystem rewrites all records to their defaults and logs a single
	// admin_update entry. Admin or above.
	ResetSystem(ctx context.Context, actor *models.UserProfile) error
}

// ActivityService defines read access to the activity feed.
type ActivityService interface {
	// Recent returns up to limit entries, newest first. A non-positive or
	// oversized limit is clamped to the configured feed cap.
	Recent(ctx context.Context, limit int) ([]*models.Activity, error)
	// ClearAll wipes the activity log. Admin or above.
	ClearAll(ctx context.Context, actor *models.UserProfile) error
}

// StatsService computes the usage report from the activity log and the
// current fleet state.
type StatsService interface {
	Report(ctx context.Context, now time.Time) (*models.UsageReport, error)
}

// UserService defines account and profile management.
type UserService interface {
	// Register creates the auth account and the profile record. New
	// accounts always get the user role.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error)
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
	// List returns all profiles. Admin or above.
	List(ctx context.Context, actor *models.UserProfile) ([]*models.UserProfile, error)
	// UpdateProfile lets a user edit their own contact fields.
	UpdateProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error)
	// AdminUpdate edits any profile. Role changes require the owner role.
	AdminUpdate(ctx context.Context, actor *models.UserProfile, uid string, req *models.AdminUserUpdateRequest) (*models.UserProfile, error)
	// Delete removes the auth account and the profile record. Owner only.
	Delete(ctx context.Context, actor *models.UserProfile, uid string) error
	// SendPasswordReset generates a reset link for the account email.
	SendPasswordReset(ctx context.Context, email string) (string, error)
	// IssueTemporaryPassword sets a generated short-lived password on the
	// account and returns it once. Owner only.
	IssueTemporaryPassword(ctx context.Context, actor *models.UserProfile, uid string) (string, error)
}

// AvailabilityNotifier receives a signal whenever an umbrella becomes
// available in a zone. Implementations must not block the caller.
type AvailabilityNotifier interface {
	UmbrellaAvailable(zone models.Zone, umbrellaID int)
}
