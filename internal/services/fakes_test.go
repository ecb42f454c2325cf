package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"communitypulse/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	order     []string
	createErr error
	listErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[e.ID] = e
	f.order = append(f.order, e.ID)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, status domain.EventStatus, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var out []*domain.Event
	for _, id := range f.order {
		e := f.byID[id]
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Category != nil {
		e.Category = *patch.Category
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Time != nil {
		e.Time = *patch.Time
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	e.UpdatedAt = time.Now()
	copied := *e
	return &copied, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeEventRepo) ListApprovedByDate(ctx context.Context, date string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, id := range f.order {
		e := f.byID[id]
		if e.Status == domain.StatusApproved && e.Date == date {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

// fakeInterestRepo is an in-memory InterestRepository for tests.
type fakeInterestRepo struct {
	interests []*domain.Interest
	createErr error
}

func newFakeInterestRepo() *fakeInterestRepo {
	return &fakeInterestRepo{}
}

func (f *fakeInterestRepo) Create(ctx context.Context, i *domain.Interest) error {
	if f.createErr != nil {
		return f.createErr
	}
	copied := *i
	f.interests = append(f.interests, &copied)
	return nil
}

func (f *fakeInterestRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Interest, error) {
	var out []*domain.Interest
	for _, i := range f.interests {
		if i.EventID == eventID {
			out = append(out, i)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID     map[string]*domain.User
	getErr   error
	createN  int
	banned   map[string]bool
	verified map[string]bool
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:     make(map[string]*domain.User),
		banned:   make(map[string]bool),
		verified: make(map[string]bool),
	}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.createN++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.User, int, error) {
	var out []*domain.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) SetBanned(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Banned = true
	f.banned[id] = true
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) SetVerifiedOrganizer(ctx context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.VerifiedOrganizer = true
	f.verified[id] = true
	copied := *u
	return &copied, nil
}

// fakeEmailService records sent emails and can fail selected recipients.
type fakeEmailService struct {
	statusSent   []*domain.EventStatusEmailData
	reminderSent []*domain.EventReminderEmailData
	failFor      map[string]bool // recipient emails whose delivery fails
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{failFor: make(map[string]bool)}
}

func (f *fakeEmailService) SendEventStatusUpdate(ctx context.Context, data *domain.EventStatusEmailData) error {
	if f.failFor[data.Email] {
		return fmt.Errorf("delivery to %s failed", data.Email)
	}
	f.statusSent = append(f.statusSent, data)
	return nil
}

func (f *fakeEmailService) SendEventReminder(ctx context.Context, data *domain.EventReminderEmailData) error {
	if f.failFor[data.Email] {
		return fmt.Errorf("delivery to %s failed", data.Email)
	}
	f.reminderSent = append(f.reminderSent, data)
	return nil
}

// fakeGeocoder returns fixed coordinates or a fixed error.
type fakeGeocoder struct {
	coords *domain.Coordinates
	err    error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.coords, nil
}

// fakeHasher is a transparent PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

// fakeIssuer records the last Issue call.
type fakeIssuer struct {
	lastUserID string
	lastRoles  []string
}

func (f *fakeIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	f.lastUserID = userID
	f.lastRoles = roles
	return "token-" + userID, nil
}
