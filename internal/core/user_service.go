package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"umbrella-backend-go/internal/crypto"
	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// Custom errors for the UserService.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailInUse   = errors.New("email already registered")
	ErrInvalidRole  = errors.New("invalid role")
)

// tempPasswordTTL is how long an issued temporary password stays valid.
const tempPasswordTTL = 24 * time.Hour

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	auth     db.AuthProvider
	logger   *zap.Logger
	now      func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(ur db.UserRepository, auth db.AuthProvider, logger *zap.Logger) UserService {
	return &userService{
		userRepo: ur,
		auth:     auth,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, error) {
	displayName := req.FirstName + " " + req.LastName
	uid, err := s.auth.CreateUser(ctx, req.Email, req.Password, displayName)
	if err != nil {
		if errors.Is(err, db.ErrEmailAlreadyExists) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	ts := s.now().UnixMilli()
	profile := &models.UserProfile{
		UID:           uid,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Grade:         req.Grade,
		StudentNumber: req.StudentNumber,
		Phone:         req.Phone,
		Email:         req.Email,
		Role:          models.RoleUser,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	if err := s.userRepo.Set(ctx, profile); err != nil {
		// Roll back the auth account so the email is not left orphaned.
		if delErr := s.auth.DeleteUser(ctx, uid); delErr != nil {
			s.logger.Error("Failed to roll back auth user after profile write failure",
				zap.String("uid", uid), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to store profile for new user: %w", err)
	}

	s.logger.Info("User registered", zap.String("uid", uid), zap.String("email", req.Email))
	return profile, nil
}

func (s *userService) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	profile, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *userService) List(ctx context.Context, actor *models.UserProfile) ([]*models.UserProfile, error) {
	if !actor.Role.AtLeast(models.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.userRepo.List(ctx)
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["lastName"] = *req.LastName
	}
	if req.Grade != nil {
		fields["grade"] = *req.Grade
	}
	if req.StudentNumber != nil {
		fields["studentNumber"] = *req.StudentNumber
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	return s.applyUpdate(ctx, uid, fields)
}

func (s *userService) AdminUpdate(ctx context.Context, actor *models.UserProfile, uid string, req *models.AdminUserUpdateRequest) (*models.UserProfile, error) {
	if !actor.Role.AtLeast(models.RoleAdmin) {
		return nil, ErrForbidden
	}

	fields := make(map[string]interface{})
	if req.FirstName != nil {
		fields["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["lastName"] = *req.LastName
	}
	if req.Grade != nil {
		fields["grade"] = *req.Grade
	}
	if req.StudentNumber != nil {
		fields["studentNumber"] = *req.StudentNumber
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Role != nil {
		// Granting or revoking roles is reserved for the owner.
		if !actor.Role.AtLeast(models.RoleOwner) {
			return nil, ErrForbidden
		}
		if !req.Role.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, *req.Role)
		}
		fields["role"] = string(*req.Role)
	}
	return s.applyUpdate(ctx, uid, fields)
}

// applyUpdate stamps updatedAt, writes the partial update and re-reads
// the record.
func (s *userService) applyUpdate(ctx context.Context, uid string, fields map[string]interface{}) (*models.UserProfile, error) {
	if _, err := s.GetByUID(ctx, uid); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		fields["updatedAt"] = s.now().UnixMilli()
		if err := s.userRepo.Update(ctx, uid, fields); err != nil {
			return nil, err
		}
	}
	return s.GetByUID(ctx, uid)
}

func (s *userService) Delete(ctx context.Context, actor *models.UserProfile, uid string) error {
	if !actor.Role.AtLeast(models.RoleOwner) {
		return ErrForbidden
	}
	if _, err := s.GetByUID(ctx, uid); err != nil {
		return err
	}
	if err := s.auth.DeleteUser(ctx, uid); err != nil && !errors.Is(err, db.ErrNotFound) {
		return err
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return err
	}
	s.logger.Info("User deleted", zap.String("uid", uid), zap.String("actor", actor.UID))
	return nil
}

func (s *userService) SendPasswordReset(ctx context.Context, email string) (string, error) {
	link, err := s.auth.PasswordResetLink(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return link, nil
}

// IssueTemporaryPassword generates a short password, sets it on the auth
// account and records only its hash alongside a 24h expiry. The clear
// text is returned exactly once.
func (s *userService) IssueTemporaryPassword(ctx context.Context, actor *models.UserProfile, uid string) (string, error) {
	if !actor.Role.AtLeast(models.RoleOwner) {
		return "", ErrForbidden
	}
	if _, err := s.GetByUID(ctx, uid); err != nil {
		return "", err
	}

	password, err := crypto.GeneratePassword(crypto.TempPasswordLength)
	if err != nil {
		return "", err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", err
	}

	if err := s.auth.SetPassword(ctx, uid, password); err != nil {
		return "", err
	}

	now := s.now()
	fields := map[string]interface{}{
		"tempPasswordHash":      hash,
		"tempPasswordExpires":   now.Add(tempPasswordTTL).UnixMilli(),
		"requirePasswordChange": true,
		"updatedAt":             now.UnixMilli(),
	}
	if err := s.userRepo.Update(ctx, uid, fields); err != nil {
		return "", fmt.Errorf("temporary password set but profile update failed: %w", err)
	}

	s.logger.Info("Temporary password issued",
		zap.String("uid", uid), zap.String("actor", actor.UID))
	return password, nil
}
