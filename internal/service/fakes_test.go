package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/housingportal/housingportal-go/internal/crypto"
	"github.com/housingportal/housingportal-go/internal/model"
	"github.com/housingportal/housingportal-go/internal/repository"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory UserStore, StudentStore and ListingStore.
type memStore struct {
	mu       sync.Mutex
	users    map[string]model.User
	students map[string]model.Student
	listings map[string]model.Listing

	createUserErr error
	lookupErr     error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]model.User),
		students: make(map[string]model.Student),
		listings: make(map[string]model.Listing),
	}
}

func (m *memStore) findUser(match func(model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	for _, u := range m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return m.findUser(func(u model.User) bool { return u.Username == username })
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.findUser(func(u model.User) bool { return u.Email == email })
}

func (m *memStore) CreateWithStudent(_ context.Context, user *model.User, student *model.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createUserErr != nil {
		return m.createUserErr
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	m.users[user.ID] = *user
	m.students[student.ID] = *student
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*model.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &s, nil
}

// listingStore exposes the listing half of memStore; GetByID clashes with
// the student lookup.
type listingStore struct{ *memStore }

func (m listingStore) joined(l model.Listing) model.Listing {
	l.Owner = m.students[l.StudentID]
	return l
}

func (m listingStore) sorted(keep func(model.Listing) bool) []model.Listing {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Listing
	for _, l := range m.listings {
		if keep(l) {
			out = append(out, m.joined(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m listingStore) ListAll(context.Context) ([]model.Listing, error) {
	return m.sorted(func(model.Listing) bool { return true }), nil
}

func (m listingStore) ListByStudent(_ context.Context, studentID string) ([]model.Listing, error) {
	return m.sorted(func(l model.Listing) bool { return l.StudentID == studentID }), nil
}

func (m listingStore) GetByID(_ context.Context, id string) (*model.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}
	l = m.joined(l)
	return &l, nil
}

func (m listingStore) ExistsDuplicate(_ context.Context, title, description, address string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.listings {
		if l.Title == title && l.Description == description && l.Address == address {
			return true, nil
		}
	}
	return false, nil
}

func (m listingStore) Create(_ context.Context, l *model.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *l
	stored.Owner = model.Student{}
	m.listings[l.ID] = stored
	return nil
}

func (m listingStore) Update(_ context.Context, l *model.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.listings[l.ID]
	if !ok {
		return repository.ErrListingNotFound
	}
	stored := *l
	stored.StudentID = existing.StudentID
	stored.Owner = model.Student{}
	m.listings[l.ID] = stored
	return nil
}

func (m listingStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[id]; !ok {
		return repository.ErrListingNotFound
	}
	delete(m.listings, id)
	return nil
}

var errDBDown = errors.New("db down")

type testEnv struct {
	store    *memStore
	issuer   *crypto.TokenIssuer
	auth     *AuthService
	listings *ListingService
	students *StudentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	issuer := crypto.NewTokenIssuer("test-secret", "housingportal", "housingportal-api", time.Hour)
	hasher := crypto.NewArgon2idHasher(crypto.HashParams{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	ls := listingStore{store}
	return &testEnv{
		store:    store,
		issuer:   issuer,
		auth:     NewAuthService(store, hasher, issuer),
		listings: NewListingService(ls, store, ""),
		students: NewStudentService(store, ls),
	}
}

// registerStudent registers an account and returns the student ID carried by its token.
func (e *testEnv) registerStudent(t *testing.T, username string) string {
	t.Helper()
	res, err := e.auth.Register(context.Background(), model.RegisterRequest{
		Username:       username,
		Email:          username + "@example.com",
		Password:       "Password123!",
		Phone:          "555-0100",
		Major:          "Computer Science",
		GraduationYear: 2025,
	})
	require.NoError(t, err)
	claims, err := e.issuer.Validate(res.Token)
	require.NoError(t, err)
	return claims.NameIdentifier
}
