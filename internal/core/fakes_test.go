package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"umbrella-backend-go/internal/db"
	"umbrella-backend-go/internal/models"
)

// In-memory repository fakes implementing the db interfaces.

type fakeUmbrellaRepo struct {
	mu      sync.Mutex
	records map[int]models.Umbrella
}

func newFakeUmbrellaRepo() *fakeUmbrellaRepo {
	return &fakeUmbrellaRepo{records: make(map[int]models.Umbrella)}
}

func (r *fakeUmbrellaRepo) Get(_ context.Context, id int) (*models.Umbrella, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("umbrella %d: %w", id, db.ErrNotFound)
	}
	out := u
	return &out, nil
}

func (r *fakeUmbrellaRepo) List(_ context.Context) ([]*models.Umbrella, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Umbrella, 0, len(r.records))
	for _, u := range r.records {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUmbrellaRepo) Set(_ context.Context, umbrella *models.Umbrella) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[umbrella.ID] = *umbrella
	return nil
}

func (r *fakeUmbrellaRepo) Transact(_ context.Context, id int, fn func(current models.Umbrella) (models.Umbrella, error)) (*models.Umbrella, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("umbrella %d: %w", id, db.ErrNotFound)
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	r.records[id] = next
	out := next
	return &out, nil
}

func (r *fakeUmbrellaRepo) Seed(_ context.Context, defaults []*models.Umbrella) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := 0
	for _, def := range defaults {
		if _, exists := r.records[def.ID]; exists {
			continue
		}
		r.records[def.ID] = *def
		created++
	}
	return created, nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*models.Activity
	next    int
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (r *fakeActivityRepo) Append(_ context.Context, activity *models.Activity) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	entry := *activity
	entry.ID = fmt.Sprintf("act-%04d", r.next)
	r.entries = append(r.entries, &entry)
	return entry.ID, nil
}

// List keeps the entries with the highest timestamps, mirroring the
// LimitToLast query of the real repository, but returns them in
// insertion order since callers must not rely on order.
func (r *fakeActivityRepo) List(_ context.Context, limit int) ([]*models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]*models.Activity, len(r.entries))
	copy(entries, r.entries)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp < entries[j].Timestamp })
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]*models.Activity, 0, len(entries))
	for _, a := range entries {
		a := *a
		out = append(out, &a)
	}
	return out, nil
}

func (r *fakeActivityRepo) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}

func (r *fakeActivityRepo) ofType(kind models.ActivityType) []*models.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Activity
	for _, a := range r.entries {
		if a.Type == kind {
			out = append(out, a)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu      sync.Mutex
	records map[string]models.UserProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{records: make(map[string]models.UserProfile)}
}

func (r *fakeUserRepo) GetByUID(_ context.Context, uid string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[uid]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", uid, db.ErrNotFound)
	}
	out := p
	return &out, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.UserProfile, 0, len(r.records))
	for _, p := range r.records {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (r *fakeUserRepo) Set(_ context.Context, profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[profile.UID] = *profile
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, uid string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[uid]
	if !ok {
		return fmt.Errorf("user %s: %w", uid, db.ErrNotFound)
	}
	for key, value := range fields {
		switch key {
		case "firstName":
			p.FirstName = value.(string)
		case "lastName":
			p.LastName = value.(string)
		case "grade":
			p.Grade = value.(string)
		case "studentNumber":
			p.StudentNumber = value.(string)
		case "phone":
			p.Phone = value.(string)
		case "role":
			p.Role = models.Role(value.(string))
		case "tempPasswordHash":
			p.TempPasswordHash = value.(string)
		case "tempPasswordExpires":
			p.TempPasswordExpires = value.(int64)
		case "requirePasswordChange":
			p.RequirePasswordChange = value.(bool)
		case "updatedAt":
			p.UpdatedAt = value.(int64)
		default:
			return fmt.Errorf("fake user repo: unknown field %q", key)
		}
	}
	r.records[uid] = p
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, uid)
	return nil
}

type fakeAuthProvider struct {
	mu        sync.Mutex
	next      int
	emails    map[string]string // email -> uid
	passwords map[string]string // uid -> current password
	deleted   []string
}

func newFakeAuthProvider() *fakeAuthProvider {
	return &fakeAuthProvider{
		emails:    make(map[string]string),
		passwords: make(map[string]string),
	}
}

func (a *fakeAuthProvider) CreateUser(_ context.Context, email, password, _ string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.emails[email]; exists {
		return "", fmt.Errorf("email %s: %w", email, db.ErrEmailAlreadyExists)
	}
	a.next++
	uid := fmt.Sprintf("uid-%04d", a.next)
	a.emails[email] = uid
	a.passwords[uid] = password
	return uid, nil
}

func (a *fakeAuthProvider) SetPassword(_ context.Context, uid, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.passwords[uid]; !ok {
		return fmt.Errorf("auth user %s: %w", uid, db.ErrNotFound)
	}
	a.passwords[uid] = password
	return nil
}

func (a *fakeAuthProvider) DeleteUser(_ context.Context, uid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.passwords, uid)
	a.deleted = append(a.deleted, uid)
	return nil
}

func (a *fakeAuthProvider) PasswordResetLink(_ context.Context, email string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.emails[email]; !ok {
		return "", fmt.Errorf("auth user with email %s: %w", email, db.ErrNotFound)
	}
	return "https://example.test/reset?email=" + email, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []struct {
		zone models.Zone
		id   int
	}
}

func (n *fakeNotifier) UmbrellaAvailable(zone models.Zone, umbrellaID int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, struct {
		zone models.Zone
		id   int
	}{zone, umbrellaID})
}
