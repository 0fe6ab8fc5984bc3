package staff

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelierhq/studio-booking-backend/internal/auth"
)

type memRepo struct {
	byID    map[string]*Staff
	byEmail map[string]*Staff
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[string]*Staff), byEmail: make(map[string]*Staff)}
}

func (r *memRepo) Create(_ context.Context, s *Staff) error {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	r.byID[s.ID] = s
	r.byEmail[s.Email] = s
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*Staff, error) {
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*Staff, error) {
	if s, ok := r.byEmail[email]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Staff, int, error) {
	var out []*Staff
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, s *Staff) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	r.byEmail[s.Email] = s
	return nil
}

func (r *memRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	s, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	s.LastLoginAt = &at
	return nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	// Minimum bcrypt cost keeps the suite fast.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestCreateNormalizesAndHashes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{
		Name:     "  Ana  ",
		Email:    "  Ana@Example.COM ",
		Password: "correct horse",
		Role:     "admin",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", m.Name)
	assert.Equal(t, "ana@example.com", m.Email)
	assert.True(t, m.IsActive)
	assert.NotEmpty(t, m.PasswordHash)
	assert.NotEqual(t, "correct horse", m.PasswordHash)

	_, err = svc.Create(ctx, CreateRequest{Email: "ana@example.com", Password: "something else"})
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	_, err = svc.Create(ctx, CreateRequest{Email: "short@example.com", Password: "2short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Create(ctx, CreateRequest{Password: "long enough"})
	assert.ErrorIs(t, err, ErrEmailRequired)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	// Email case and padding are forgiven; the password is not.
	m, err := svc.Login(ctx, " ANA@example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, m.ID)
	assert.NotNil(t, m.LastLoginAt)

	_, err = svc.Login(ctx, "ana@example.com", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts fail the same way as wrong passwords.
	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, CreateRequest{Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, m.ID, UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInactive)
}
