package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/identity"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users map[uuid.UUID]identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &user, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, user := range r.users {
		if user.Username == username && !user.IsDeleted() {
			u := user
			return &u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) Save(_ context.Context, user *identity.User) error {
	r.users[user.ID] = *user
	return nil
}

type staticIssuer struct {
	token     string
	expiresAt time.Time
}

func (i *staticIssuer) Issue(_ uuid.UUID, _ string, _ identity.UserRole) (string, time.Time, error) {
	return i.token, i.expiresAt, nil
}

var authNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newAuthFixture(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	repo := newMemUserRepo()
	service := NewAuthService(repo, &staticIssuer{token: "test-token", expiresAt: authNow.Add(24 * time.Hour)})
	service.now = func() time.Time { return authNow }
	return service, repo
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	service, repo := newAuthFixture(t)

	registered, err := service.Register(context.Background(), RegisterRequest{
		Username:    "Maria",
		DisplayName: "Maria K",
		Password:    "s3cret-pass",
		Role:        "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria", registered.Username)

	resp, err := service.Login(context.Background(), LoginRequest{
		Username: "maria",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, registered.ID, resp.User.ID)

	// successful login is stamped
	saved := repo.users[registered.ID]
	require.NotNil(t, saved.LastLoginAt)
	assert.True(t, saved.LastLoginAt.Equal(authNow))
}

func TestAuthServiceLoginDoesNotRevealAccounts(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(context.Background(), RegisterRequest{
		Username:    "maria",
		DisplayName: "Maria K",
		Password:    "s3cret-pass",
		Role:        "staff",
	})
	require.NoError(t, err)

	// wrong password and unknown username fail identically
	_, wrongPass := service.Login(context.Background(), LoginRequest{Username: "maria", Password: "nope-nope"})
	_, unknown := service.Login(context.Background(), LoginRequest{Username: "ghost", Password: "nope-nope"})
	assert.ErrorIs(t, wrongPass, shared.ErrUnauthorized)
	assert.ErrorIs(t, unknown, shared.ErrUnauthorized)
}

func TestAuthServiceRegisterRejectsDuplicateUsername(t *testing.T) {
	service, _ := newAuthFixture(t)

	req := RegisterRequest{
		Username:    "maria",
		DisplayName: "Maria K",
		Password:    "s3cret-pass",
		Role:        "staff",
	}
	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	registered, err := service.Register(context.Background(), RegisterRequest{
		Username:    "maria",
		DisplayName: "Maria K",
		Password:    "s3cret-pass",
		Role:        "admin",
	})
	require.NoError(t, err)

	err = service.ChangePassword(context.Background(), registered.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "new-pass-123",
	})
	require.Error(t, err)

	err = service.ChangePassword(context.Background(), registered.ID, ChangePasswordRequest{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "new-pass-123",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), LoginRequest{Username: "maria", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	_, err = service.Login(context.Background(), LoginRequest{Username: "maria", Password: "new-pass-123"})
	assert.NoError(t, err)
}
