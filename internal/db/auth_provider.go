package db

import (
	"context"
	"errors"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// AuthProvider wraps the Firebase Auth admin operations the core services
// need, so they can be faked in tests without a live project.
type AuthProvider interface {
	// CreateUser provisions a new auth account and returns its UID.
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	// SetPassword replaces the account password.
	SetPassword(ctx context.Context, uid, password string) error
	DeleteUser(ctx context.Context, uid string) error
	// PasswordResetLink generates a reset link for the account email.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}

// firebaseAuthProvider implements AuthProvider over the Firebase Auth
// Admin client.
type firebaseAuthProvider struct {
	client *auth.Client
}

// NewFirebaseAuthProvider creates a new AuthProvider.
func NewFirebaseAuthProvider(client *auth.Client) AuthProvider {
	if client == nil {
		panic("Firebase Auth client is not initialized for AuthProvider")
	}
	return &firebaseAuthProvider{client: client}
}

func (p *firebaseAuthProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	record, err := p.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", fmt.Errorf("email %s: %w", email, ErrEmailAlreadyExists)
		}
		return "", fmt.Errorf("failed to create auth user: %w", err)
	}
	return record.UID, nil
}

func (p *firebaseAuthProvider) SetPassword(ctx context.Context, uid, password string) error {
	params := (&auth.UserToUpdate{}).Password(password)
	if _, err := p.client.UpdateUser(ctx, uid, params); err != nil {
		if auth.IsUserNotFound(err) {
			return fmt.Errorf("auth user %s: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update auth user %s: %w", uid, err)
	}
	return nil
}

func (p *firebaseAuthProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return fmt.Errorf("auth user %s: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to delete auth user %s: %w", uid, err)
	}
	return nil
}

func (p *firebaseAuthProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", fmt.Errorf("auth user with email %s: %w", email, ErrNotFound)
		}
		return "", fmt.Errorf("failed to generate password reset link: %w", err)
	}
	return link, nil
}

// ErrEmailAlreadyExists is returned when registering with an email that
// already has an auth account.
var ErrEmailAlreadyExists = errors.New("email already registered")
