package userRepo

import (
	"context"
	"testing"
	"time"

	"telecare/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapCache is an in-memory stand-in for the redis client slice the decorator
// uses.
type mapCache struct {
	values map[string]string
	sets   int
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string]string)}
}

func (c *mapCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := c.values[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	c.values[key] = string(value.([]byte))
	c.sets++
	return redis.NewStatusResult("OK", nil)
}

func (c *mapCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := c.values[key]; ok {
			delete(c.values, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// countingUserRepo counts store reads.
type countingUserRepo struct {
	items map[string]*models.User
	reads int
}

func (r *countingUserRepo) GetByID(id string) (*models.User, error) {
	r.reads++
	usr, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *usr
	return &cp, nil
}

func (r *countingUserRepo) GetByEmail(string) (*models.User, error) { return nil, nil }
func (r *countingUserRepo) GetAll() ([]models.User, error)          { return nil, nil }
func (r *countingUserRepo) Create(*models.User) error               { return nil }

func (r *countingUserRepo) Update(usr *models.User) error {
	cp := *usr
	r.items[usr.ID] = &cp
	return nil
}

func (r *countingUserRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func TestCachedGetByIDFillsAndServesFromCache(t *testing.T) {
	inner := &countingUserRepo{items: map[string]*models.User{
		"u1": {ID: "u1", FirstName: "Alice", Email: "alice@example.com"},
	}}
	cache := newMapCache()
	repo := NewCachedUserRepo(inner, cache, time.Minute)

	usr, err := repo.GetByID("u1")
	require.NoError(t, err)
	require.NotNil(t, usr)
	assert.Equal(t, "Alice", usr.FirstName)
	assert.Equal(t, 1, inner.reads)
	assert.Equal(t, 1, cache.sets)

	// Second lookup is answered by the cache alone.
	usr, err = repo.GetByID("u1")
	require.NoError(t, err)
	require.NotNil(t, usr)
	assert.Equal(t, "alice@example.com", usr.Email)
	assert.Equal(t, 1, inner.reads)
}

func TestCachedGetByIDMissDoesNotCacheAbsence(t *testing.T) {
	inner := &countingUserRepo{items: map[string]*models.User{}}
	cache := newMapCache()
	repo := NewCachedUserRepo(inner, cache, time.Minute)

	usr, err := repo.GetByID("ghost")
	require.NoError(t, err)
	assert.Nil(t, usr)
	assert.Equal(t, 0, cache.sets)
}

func TestUpdateInvalidatesCachedUser(t *testing.T) {
	inner := &countingUserRepo{items: map[string]*models.User{
		"u1": {ID: "u1", FirstName: "Alice"},
	}}
	cache := newMapCache()
	repo := NewCachedUserRepo(inner, cache, time.Minute)

	_, err := repo.GetByID("u1")
	require.NoError(t, err)

	require.NoError(t, repo.Update(&models.User{ID: "u1", FirstName: "Alicia"}))

	usr, err := repo.GetByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", usr.FirstName)
	assert.Equal(t, 2, inner.reads)
}

func TestDeleteInvalidatesCachedUser(t *testing.T) {
	inner := &countingUserRepo{items: map[string]*models.User{
		"u1": {ID: "u1", FirstName: "Alice"},
	}}
	cache := newMapCache()
	repo := NewCachedUserRepo(inner, cache, time.Minute)

	_, err := repo.GetByID("u1")
	require.NoError(t, err)

	require.NoError(t, repo.Delete("u1"))

	usr, err := repo.GetByID("u1")
	require.NoError(t, err)
	assert.Nil(t, usr)
}
