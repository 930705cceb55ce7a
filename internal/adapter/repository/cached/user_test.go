package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-profile-service/internal/adapter/cache"
	domain "user-profile-service/internal/domain/user"
	"user-profile-service/internal/usecase/user"
)

// MockDBRepository is a mock implementation of the user.Repository interface
// standing in for the persistent store behind the cache.
type MockDBRepository struct {
	mock.Mock
}

func (m *MockDBRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockDBRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDBRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockDBRepository) Update(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDBRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDBRepository) List(ctx context.Context, search string, offset, limit int64) ([]domain.User, int64, error) {
	args := m.Called(ctx, search, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func setupCachedRepo(t *testing.T) (user.Repository, *MockDBRepository, cache.UserCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	userCache := cache.NewRedisUserCache(client, 5*time.Minute, log)
	dbRepo := new(MockDBRepository)

	return NewCachedUserRepository(dbRepo, userCache, log), dbRepo, userCache
}

const testID = "7f9c24e5-2f31-4a3b-8d7e-1b2c3d4e5f6a"

func cachedTestUser() *domain.User {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{ID: testID, Name: "John Doe", Email: "john@example.com", CreatedAt: now, UpdatedAt: now}
}

func TestGetByID_CacheMissPopulatesCache(t *testing.T) {
	repo, dbRepo, userCache := setupCachedRepo(t)
	ctx := context.Background()

	u := cachedTestUser()
	dbRepo.On("GetByID", ctx, testID).Return(u, nil).Once()

	got, err := repo.GetByID(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	cachedUser, err := userCache.Get(ctx, testID)
	require.NoError(t, err)
	require.NotNil(t, cachedUser, "miss populates the cache")

	// Second read is served from cache, the DB mock allows only one call
	got, err = repo.GetByID(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	dbRepo.AssertExpectations(t)
}

func TestGetByID_NotFoundNotCached(t *testing.T) {
	repo, dbRepo, userCache := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, testID).Return(nil, nil)

	got, err := repo.GetByID(ctx, testID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	cachedUser, err := userCache.Get(ctx, testID)
	require.NoError(t, err)
	assert.Nil(t, cachedUser, "absent rows are not cached")
}

func TestGetByID_DBError(t *testing.T) {
	repo, dbRepo, _ := setupCachedRepo(t)
	ctx := context.Background()

	dbRepo.On("GetByID", ctx, testID).Return(nil, errors.New("connection refused"))

	got, err := repo.GetByID(ctx, testID)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	repo, dbRepo, userCache := setupCachedRepo(t)
	ctx := context.Background()

	u := cachedTestUser()
	require.NoError(t, userCache.Set(ctx, u))

	dbRepo.On("Update", ctx, u).Return(int64(1), nil)

	rows, err := repo.Update(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	cachedUser, err := userCache.Get(ctx, testID)
	require.NoError(t, err)
	assert.Nil(t, cachedUser, "update invalidates the entry")
}

func TestDelete_InvalidatesCache(t *testing.T) {
	repo, dbRepo, userCache := setupCachedRepo(t)
	ctx := context.Background()

	u := cachedTestUser()
	require.NoError(t, userCache.Set(ctx, u))

	dbRepo.On("Delete", ctx, testID).Return(int64(1), nil)

	rows, err := repo.Delete(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	cachedUser, err := userCache.Get(ctx, testID)
	require.NoError(t, err)
	assert.Nil(t, cachedUser)
}

func TestDelete_DBErrorKeepsCache(t *testing.T) {
	repo, dbRepo, userCache := setupCachedRepo(t)
	ctx := context.Background()

	u := cachedTestUser()
	require.NoError(t, userCache.Set(ctx, u))

	dbRepo.On("Delete", ctx, testID).Return(int64(0), errors.New("connection refused"))

	_, err := repo.Delete(ctx, testID)
	assert.Error(t, err)

	cachedUser, err := userCache.Get(ctx, testID)
	require.NoError(t, err)
	assert.NotNil(t, cachedUser, "failed delete leaves the entry in place")
}

func TestGetByEmail_BypassesCache(t *testing.T) {
	repo, dbRepo, userCache := setupCachedRepo(t)
	ctx := context.Background()

	// A stale entry must not satisfy a uniqueness pre-check
	require.NoError(t, userCache.Set(ctx, cachedTestUser()))

	dbRepo.On("GetByEmail", ctx, "john@example.com").Return(nil, nil)

	got, err := repo.GetByEmail(ctx, "john@example.com")
	assert.NoError(t, err)
	assert.Nil(t, got)
	dbRepo.AssertExpectations(t)
}

func TestList_Delegates(t *testing.T) {
	repo, dbRepo, _ := setupCachedRepo(t)
	ctx := context.Background()

	expected := []domain.User{*cachedTestUser()}
	dbRepo.On("List", ctx, "john", int64(0), int64(10)).Return(expected, int64(1), nil)

	users, total, err := repo.List(ctx, "john", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
}

func TestCreate_Delegates(t *testing.T) {
	repo, dbRepo, _ := setupCachedRepo(t)
	ctx := context.Background()

	u := cachedTestUser()
	dbRepo.On("Create", ctx, u).Return(nil)

	assert.NoError(t, repo.Create(ctx, u))
	dbRepo.AssertExpectations(t)
}

func TestGetByID_NilCacheFallsThrough(t *testing.T) {
	dbRepo := new(MockDBRepository)
	repo := NewCachedUserRepository(dbRepo, nil, zaptest.NewLogger(t))
	ctx := context.Background()

	u := cachedTestUser()
	dbRepo.On("GetByID", ctx, testID).Return(u, nil)

	got, err := repo.GetByID(ctx, testID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}
