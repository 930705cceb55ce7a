package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-profile-service/internal/adapter/cache"
	domain "user-profile-service/internal/domain/user"
	"user-profile-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
// Cache failures degrade to the database and never fail the request.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using the cache-aside pattern. Concurrent
// misses for the same id collapse into one database round-trip.
func (r *CachedUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("id", id), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	result, err, _ := r.group.Do("user:"+id, func() (any, error) {
		// Another request may have populated the cache while we waited
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if u != nil && r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return result.(*domain.User), nil
}

// GetByEmail delegates to the DB repository. Uniqueness pre-checks must see
// the store, not a stale cache entry.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// Update updates the user in DB and invalidates the cache.
func (r *CachedUserRepository) Update(ctx context.Context, u *domain.User) (int64, error) {
	rows, err := r.dbRepo.Update(ctx, u)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, u.ID); err != nil {
			r.log.Warn("failed to invalidate cache after update", zap.String("id", u.ID), zap.Error(err))
		}
	}

	return rows, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id string) (int64, error) {
	rows, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, id); err != nil {
			r.log.Warn("failed to invalidate cache after delete", zap.String("id", id), zap.Error(err))
		}
	}

	return rows, nil
}

// List delegates to the DB repository.
func (r *CachedUserRepository) List(ctx context.Context, search string, offset, limit int64) ([]domain.User, int64, error) {
	return r.dbRepo.List(ctx, search, offset, limit)
}
