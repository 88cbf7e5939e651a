package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	rtdb "firebase.google.com/go/v4/db"

	"umbrella-backend-go/internal/models"
)

const usersPath = "users"

// rtdbUserRepository implements UserRepository over the tree at
// users/{uid}. The Firebase Auth UID is the record key.
type rtdbUserRepository struct {
	client *rtdb.Client
}

// NewRTDBUserRepository creates a new user repository.
func NewRTDBUserRepository(client *rtdb.Client) UserRepository {
	if client == nil {
		panic("Realtime Database client is not initialized for UserRepository")
	}
	return &rtdbUserRepository{client: client}
}

func (r *rtdbUserRepository) ref(uid string) *rtdb.Ref {
	return r.client.NewRef(usersPath).Child(uid)
}

// GetByUID retrieves a profile record. A missing path unmarshals to the
// zero value; an empty UID field means no record exists.
func (r *rtdbUserRepository) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByUID")
	}
	var p models.UserProfile
	if err := r.ref(uid).Get(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if p.UID == "" {
		return nil, fmt.Errorf("user %s: %w", uid, ErrNotFound)
	}
	return &p, nil
}

// List retrieves all profile records ordered by creation time.
func (r *rtdbUserRepository) List(ctx context.Context) ([]*models.UserProfile, error) {
	var raw map[string]models.UserProfile
	if err := r.client.NewRef(usersPath).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*models.UserProfile, 0, len(raw))
	for _, p := range raw {
		p := p
		users = append(users, &p)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt < users[j].CreatedAt })
	return users, nil
}

// Set overwrites the whole profile record.
func (r *rtdbUserRepository) Set(ctx context.Context, profile *models.UserProfile) error {
	if profile == nil || profile.UID == "" {
		return errors.New("profile and its uid are required for Set")
	}
	if err := r.ref(profile.UID).Set(ctx, profile); err != nil {
		return fmt.Errorf("failed to set user %s: %w", profile.UID, err)
	}
	return nil
}

// Update applies a partial update; fields not present in the map are left
// untouched.
func (r *rtdbUserRepository) Update(ctx context.Context, uid string, fields map[string]interface{}) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Update")
	}
	if len(fields) == 0 {
		return nil
	}
	if err := r.ref(uid).Update(ctx, fields); err != nil {
		return fmt.Errorf("failed to update user %s: %w", uid, err)
	}
	return nil
}

// Delete removes the profile record. Deleting the auth account is the
// caller's responsibility.
func (r *rtdbUserRepository) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for Delete")
	}
	if err := r.ref(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", uid, err)
	}
	return nil
}
