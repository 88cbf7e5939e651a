package db

import (
	"context"
	"errors"
	"fmt"
	"sort"

	rtdb "firebase.google.com/go/v4/db"

	"umbrella-backend-go/internal/models"
)

const umbrellasPath = "umbrellas"

// ErrNotFound is returned when a record does not exist at the requested
// path. Shared by all repositories in this package.
var ErrNotFound = errors.New("record not found")

// errSeedExists aborts a seed transaction for an id that already has a
// record, so the existing record is left byte-for-byte untouched.
var errSeedExists = errors.New("seed: record exists")

// rtdbUmbrellaRepository implements UmbrellaRepository over the Realtime
// Database tree at umbrellas/{1..21}.
type rtdbUmbrellaRepository struct {
	client *rtdb.Client
}

// NewRTDBUmbrellaRepository creates a new umbrella repository.
func NewRTDBUmbrellaRepository(client *rtdb.Client) UmbrellaRepository {
	if client == nil {
		panic("Realtime Database client is not initialized for UmbrellaRepository")
	}
	return &rtdbUmbrellaRepository{client: client}
}

func (r *rtdbUmbrellaRepository) ref(id int) *rtdb.Ref {
	return r.client.NewRef(fmt.Sprintf("%s/%d", umbrellasPath, id))
}

// Get retrieves one umbrella record. A missing path unmarshals to the zero
// value, which is translated into ErrNotFound (id 0 is outside the valid
// range so the check is unambiguous).
func (r *rtdbUmbrellaRepository) Get(ctx context.Context, id int) (*models.Umbrella, error) {
	var u models.Umbrella
	if err := r.ref(id).Get(ctx, &u); err != nil {
		return nil, fmt.Errorf("failed to get umbrella %d: %w", id, err)
	}
	if u.ID == 0 {
		return nil, fmt.Errorf("umbrella %d: %w", id, ErrNotFound)
	}
	return &u, nil
}

// List retrieves all umbrella records ordered by id.
func (r *rtdbUmbrellaRepository) List(ctx context.Context) ([]*models.Umbrella, error) {
	var raw map[string]models.Umbrella
	if err := r.client.NewRef(umbrellasPath).Get(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to list umbrellas: %w", err)
	}

	umbrellas := make([]*models.Umbrella, 0, len(raw))
	for _, u := range raw {
		u := u
		umbrellas = append(umbrellas, &u)
	}
	sort.Slice(umbrellas, func(i, j int) bool { return umbrellas[i].ID < umbrellas[j].ID })
	return umbrellas, nil
}

// Set overwrites one umbrella record unconditionally.
func (r *rtdbUmbrellaRepository) Set(ctx context.Context, umbrella *models.Umbrella) error {
	if umbrella == nil || umbrella.ID == 0 {
		return errors.New("umbrella and its id are required for Set")
	}
	if err := r.ref(umbrella.ID).Set(ctx, umbrella); err != nil {
		return fmt.Errorf("failed to set umbrella %d: %w", umbrella.ID, err)
	}
	return nil
}

// Transact runs fn against the current record inside a database
// transaction. The error returned by fn aborts the transaction and is
// propagated unchanged, so callers can use sentinel errors for
// precondition failures.
func (r *rtdbUmbrellaRepository) Transact(ctx context.Context, id int, fn func(current models.Umbrella) (models.Umbrella, error)) (*models.Umbrella, error) {
	var committed models.Umbrella
	err := r.ref(id).Transaction(ctx, func(tn rtdb.TransactionNode) (interface{}, error) {
		var current models.Umbrella
		if err := tn.Unmarshal(&current); err != nil {
			return nil, fmt.Errorf("failed to decode umbrella %d: %w", id, err)
		}
		if current.ID == 0 {
			return nil, fmt.Errorf("umbrella %d: %w", id, ErrNotFound)
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		committed = next
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &committed, nil
}

// Seed writes defaults only for ids with no existing record. Each id uses
// its own transaction so a concurrent writer can never be overwritten.
func (r *rtdbUmbrellaRepository) Seed(ctx context.Context, defaults []*models.Umbrella) (int, error) {
	created := 0
	for _, def := range defaults {
		def := def
		err := r.ref(def.ID).Transaction(ctx, func(tn rtdb.TransactionNode) (interface{}, error) {
			var current models.Umbrella
			if err := tn.Unmarshal(&current); err != nil {
				return nil, fmt.Errorf("failed to decode umbrella %d: %w", def.ID, err)
			}
			if current.ID != 0 {
				return nil, errSeedExists
			}
			return def, nil
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, errSeedExists):
			// Already populated; nothing to do.
		default:
			return created, fmt.Errorf("failed to seed umbrella %d: %w", def.ID, err)
		}
	}
	return created, nil
}
