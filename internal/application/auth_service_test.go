package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tydev/todoapp/internal/domain/entity"
	repo "github.com/tydev/todoapp/internal/domain/repository"
	"github.com/tydev/todoapp/pkg/helpers"
)

type fakeUserRepo struct {
	nextID int64
	byID   map[int64]*entity.User
	byName map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byID: map[int64]*entity.User{}, byName: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, exists := f.byName[u.Username]; exists {
		return repo.ErrDuplicateEntry
	}
	u.ID = f.nextID
	f.nextID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	f.byID[u.ID] = &cp
	f.byName[u.Username] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	cp.CreatedAt = stored.CreatedAt
	f.byID[u.ID] = &cp
	f.byName[cp.Username] = &cp
	return nil
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

func newAuthService() (*AuthService, *fakeUserRepo) {
	f := newFakeUserRepo()
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	return NewAuthService(f, jwt, nil, nil, nil, ""), f
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2secret", "alice@example.com")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "hunter2secret", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "hunter2secret"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2secret", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "differentpass", "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "hunter2secret", "")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "alice", "hunter2secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	// wrong password and unknown user produce the same error
	_, err = svc.Login(ctx, "alice", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "hunter2secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFindByID(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2secret", "")
	require.NoError(t, err)

	got, err := svc.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)

	_, err = svc.FindByID(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestIssueTokensWithoutRedis(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2secret", "")
	require.NoError(t, err)

	pair, err := svc.IssueTokens(ctx, u)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.AccessTokenExpiry.After(time.Now()))
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "hunter2secret", "old@example.com")
	require.NoError(t, err)
	oldHash := u.Password

	got, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, oldHash, got.Password)

	got, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileInput{Password: "anothersecret"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.True(t, helpers.CompareHashAndPassword(got.Password, "anothersecret"))
}
