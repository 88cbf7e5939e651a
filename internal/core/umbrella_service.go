package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// Custom errors for the UmbrellaService.
var (
	ErrUmbrellaNotFound     = errors.New("umbrella not found")
	ErrUmbrellaNotAvailable = errors.New("umbrella is not available")
	ErrUmbrellaNotBorrowed  = errors.New("umbrella is not borrowed")
	ErrNotBorrower          = errors.New("umbrella is borrowed by another user")
	ErrForbidden            = errors.New("user does not have permission for this action")
)

// umbrellaService implements the UmbrellaService interface.
type umbrellaService struct {
	umbrellaRepo db.UmbrellaRepository
	activityRepo db.ActivityRepository
	notifier     AvailabilityNotifier
	logger       *zap.Logger
	now          func() time.Time
}

// NewUmbrellaService creates a new UmbrellaService instance. The notifier
// may be nil when push notifications are disabled.
func NewUmbrellaService(
	ur db.UmbrellaRepository,
	ar db.ActivityRepository,
	notifier AvailabilityNotifier,
	logger *zap.Logger,
) UmbrellaService {
	return &umbrellaService{
		umbrellaRepo: ur,
		activityRepo: ar,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *umbrellaService) nowMillis() int64 {
	return s.now().UnixMilli()
}

// defaultUmbrella is the record an umbrella holds when nobody has it.
func defaultUmbrella(id int) (*models.Umbrella, error) {
	zone, err := ZoneForUmbrella(id)
	if err != nil {
		return nil, err
	}
	return &models.Umbrella{
		ID:              id,
		Status:          models.StatusAvailable,
		CurrentLocation: zone,
		History:         []models.HistoryEvent{},
	}, nil
}

func (s *umbrellaService) Seed(ctx context.Context) (int, error) {
	defaults := make([]*models.Umbrella, 0, MaxUmbrellaID)
	for id := MinUmbrellaID; id <= MaxUmbrellaID; id++ {
		def, err := defaultUmbrella(id)
		if err != nil {
			return 0, err
		}
		defaults = append(defaults, def)
	}
	created, err := s.umbrellaRepo.Seed(ctx, defaults)
	if err != nil {
		return created, fmt.Errorf("failed to seed umbrellas: %w", err)
	}
	if created > 0 {
		s.logger.Info("Seeded umbrella records", zap.Int("created", created))
	}
	return created, nil
}

func (s *umbrellaService) List(ctx context.Context) ([]*models.Umbrella, error) {
	return s.umbrellaRepo.List(ctx)
}

func (s *umbrellaService) Get(ctx context.Context, id int) (*models.Umbrella, error) {
	if _, err := ZoneForUmbrella(id); err != nil {
		return nil, err
	}
	u, err := s.umbrellaRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUmbrellaNotFound
		}
		return nil, err
	}
	return u, nil
}

// Borrow flips an available umbrella to borrowed inside a transaction, so
// two users racing for the last umbrella cannot both win. The activity
// entry is appended after the commit; the umbrella record is the
// authoritative state if the append fails.
func (s *umbrellaService) Borrow(ctx context.Context, actor *models.UserProfile, id int) (*models.Umbrella, error) {
	if _, err := ZoneForUmbrella(id); err != nil {
		return nil, err
	}
	ts := s.nowMillis()
	committed, err := s.umbrellaRepo.Transact(ctx, id, func(current models.Umbrella) (models.Umbrella, error) {
		if current.Status != models.StatusAvailable {
			return models.Umbrella{}, ErrUmbrellaNotAvailable
		}
		current.Status = models.StatusBorrowed
		current.Borrower = &models.Borrower{
			UID:       actor.UID,
			Nickname:  actor.FullName(),
			Phone:     actor.Phone,
			Timestamp: ts,
		}
		return current, nil
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUmbrellaNotFound
		}
		return nil, err
	}

	activity := &models.Activity{
		Type:       models.ActivityBorrow,
		UmbrellaID: committed.ID,
		Location:   committed.CurrentLocation,
		Timestamp:  ts,
		Nickname:   actor.FullName(),
		UserInfo: &models.ActivityUserInfo{
			UID:           actor.UID,
			Email:         actor.Email,
			FirstName:     actor.FirstName,
			LastName:      actor.LastName,
			Grade:         actor.Grade,
			StudentNumber: actor.StudentNumber,
			Phone:         actor.Phone,
		},
	}
	if _, err := s.activityRepo.Append(ctx, activity); err != nil {
		return committed, fmt.Errorf("umbrella %d borrowed but activity log failed: %w", id, err)
	}

	s.logger.Info("Umbrella borrowed",
		zap.Int("umbrellaID", committed.ID),
		zap.String("zone", string(committed.CurrentLocation)),
		zap.String("uid", actor.UID))
	return committed, nil
}

func (s *umbrellaService) Return(ctx context.Context, actor *models.UserProfile, id int) (*models.Umbrella, error) {
	if _, err := ZoneForUmbrella(id); err != nil {
		return nil, err
	}
	ts := s.nowMillis()
	committed, err := s.umbrellaRepo.Transact(ctx, id, func(current models.Umbrella) (models.Umbrella, error) {
		if current.Status != models.StatusBorrowed || current.Borrower == nil {
			return models.Umbrella{}, ErrUmbrellaNotBorrowed
		}
		if current.Borrower.UID != actor.UID {
			return models.Umbrella{}, ErrNotBorrower
		}
		current.Status = models.StatusAvailable
		current.Borrower = nil
		return current, nil
	})
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUmbrellaNotFound
		}
		return nil, err
	}

	s.dispatchAvailable(committed.CurrentLocation, committed.ID)

	activity := &models.Activity{
		Type:       models.ActivityReturn,
		UmbrellaID: committed.ID,
		Location:   committed.CurrentLocation,
		Timestamp:  ts,
		Nickname:   actor.FullName(),
	}
	if _, err := s.activityRepo.Append(ctx, activity); err != nil {
		return committed, fmt.Errorf("umbrella %d returned but activity log failed: %w", id, err)
	}

	s.logger.Info("Umbrella returned",
		zap.Int("umbrellaID", committed.ID),
		zap.String("zone", string(committed.CurrentLocation)),
		zap.String("uid", actor.UID))
	return committed, nil
}

// ForceReturnAll returns every borrowed umbrella regardless of who
// borrowed it. Each umbrella gets its own transaction and its own
// admin_update entry.
func (s *umbrellaService) ForceReturnAll(ctx context.Context, actor *models.UserProfile) (int, error) {
	if !actor.Role.AtLeast(models.RoleAdmin) {
		return 0, ErrForbidden
	}

	umbrellas, err := s.umbrellaRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	returned := 0
	for _, u := range umbrellas {
		if u.Status != models.StatusBorrowed {
			continue
		}
		ts := s.nowMillis()
		committed, err := s.umbrellaRepo.Transact(ctx, u.ID, func(current models.Umbrella) (models.Umbrella, error) {
			if current.Status != models.StatusBorrowed {
				return models.Umbrella{}, ErrUmbrellaNotBorrowed
			}
			current.Status = models.StatusAvailable
			current.Borrower = nil
			return current, nil
		})
		if err != nil {
			if errors.Is(err, ErrUmbrellaNotBorrowed) {
				// Returned by its borrower in the meantime.
				continue
			}
			return returned, fmt.Errorf("failed to force return umbrella %d: %w", u.ID, err)
		}
		returned++

		s.dispatchAvailable(committed.CurrentLocation, committed.ID)

		activity := &models.Activity{
			Type:       models.ActivityAdminUpdate,
			UmbrellaID: committed.ID,
			Location:   committed.CurrentLocation,
			Timestamp:  ts,
			Nickname:   actor.FullName(),
			Note:       "Admin force return all umbrellas",
		}
		if _, err := s.activityRepo.Append(ctx, activity); err != nil {
			return returned, fmt.Errorf("umbrella %d force-returned but activity log failed: %w", u.ID, err)
		}
	}

	s.logger.Info("Force returned all borrowed umbrellas",
		zap.Int("returned", returned),
		zap.String("actor", actor.UID))
	return returned, nil
}

// ResetSystem rewrites every record to its default and logs a single
// admin_update entry with umbrella id 0 marking the reset itself.
func (s *umbrellaService) ResetSystem(ctx context.Context, actor *models.UserProfile) error {
	if !actor.Role.AtLeast(models.RoleAdmin) {
		return ErrForbidden
	}

	for id := MinUmbrellaID; id <= MaxUmbrellaID; id++ {
		def, err := defaultUmbrella(id)
		if err != nil {
			return err
		}
		if err := s.umbrellaRepo.Set(ctx, def); err != nil {
			return fmt.Errorf("failed to reset umbrella %d: %w", id, err)
		}
	}

	activity := &models.Activity{
		Type:       models.ActivityAdminUpdate,
		UmbrellaID: 0,
		Location:   models.ZoneDome,
		Timestamp:  s.nowMillis(),
		Nickname:   actor.FullName(),
		Note:       "System reset by admin",
	}
	if _, err := s.activityRepo.Append(ctx, activity); err != nil {
		return fmt.Errorf("system reset but activity log failed: %w", err)
	}

	s.logger.Info("System reset", zap.String("actor", actor.UID))
	return nil
}

func (s *umbrellaService) dispatchAvailable(zone models.Zone, umbrellaID int) {
	if s.notifier == nil {
		return
	}
	s.notifier.UmbrellaAvailable(zone, umbrellaID)
}
