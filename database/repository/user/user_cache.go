package userRepo

import (
	"context"
	"encoding/json"
	"time"

	"telecare/models"

	"github.com/go-redis/redis/v8"
)

const userCacheKeyPrefix = "user:"

// userCache is the slice of the redis client the decorator needs.
type userCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedUserRepo puts a Redis read-through cache in front of a UserRepository.
// Profile lookups run on the hot path (payer email resolution, chat sender
// names); the cache keeps them off Mongo. Cache failures fall through to the
// store, never to the caller.
type CachedUserRepo struct {
	inner UserRepository
	cache userCache
	ttl   time.Duration
}

// NewCachedUserRepo wraps a UserRepository with a Redis cache.
func NewCachedUserRepo(inner UserRepository, cache userCache, ttl time.Duration) UserRepository {
	return &CachedUserRepo{inner: inner, cache: cache, ttl: ttl}
}

// GetByID serves the profile from cache when present, filling it from the
// store otherwise.
func (r *CachedUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := userCacheKeyPrefix + id
	if raw, err := r.cache.Get(ctx, key).Result(); err == nil {
		var usr models.User
		if err := json.Unmarshal([]byte(raw), &usr); err == nil {
			return &usr, nil
		}
	}

	usr, err := r.inner.GetByID(id)
	if err != nil || usr == nil {
		return usr, err
	}
	if raw, err := json.Marshal(usr); err == nil {
		r.cache.Set(ctx, key, raw, r.ttl)
	}
	return usr, nil
}

func (r *CachedUserRepo) GetByEmail(email string) (*models.User, error) {
	return r.inner.GetByEmail(email)
}

func (r *CachedUserRepo) GetAll() ([]models.User, error) {
	return r.inner.GetAll()
}

func (r *CachedUserRepo) Create(usr *models.User) error {
	return r.inner.Create(usr)
}

// Update writes through to the store and drops the cached copy.
func (r *CachedUserRepo) Update(usr *models.User) error {
	if err := r.inner.Update(usr); err != nil {
		return err
	}
	r.invalidate(usr.ID)
	return nil
}

// Delete removes the record and drops the cached copy.
func (r *CachedUserRepo) Delete(id string) error {
	if err := r.inner.Delete(id); err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *CachedUserRepo) invalidate(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r.cache.Del(ctx, userCacheKeyPrefix+id)
}
