package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/princeprakhar/device-catalog/internal/database"
)

type backend struct {
	name       string
	new        func(t *testing.T) Store
	concurrent bool
}

func newRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func newGorm(t *testing.T) Store {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	s := NewGormStore(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func backends() []backend {
	return []backend{
		{name: "memory", new: func(*testing.T) Store { return NewMemoryStore() }, concurrent: true},
		{name: "redis", new: func(t *testing.T) Store { s, _ := newRedis(t); return s }},
		{name: "gorm", new: newGorm, concurrent: true},
		{name: "metrics", new: func(*testing.T) Store { return WithMetrics(NewMemoryStore()) }, concurrent: true},
	}
}

func TestStoreBasics(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.new(t)

			_, err := s.Get(ctx, "device:missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "device:1", []byte(`{"id":"1"}`)))
			require.NoError(t, s.Set(ctx, "device:2", []byte(`{"id":"2"}`)))
			require.NoError(t, s.Set(ctx, "user:1", []byte(`{"id":"u1"}`)))
			require.NoError(t, s.Set(ctx, "device:1", []byte(`{"id":"1","v":2}`)))

			got, err := s.Get(ctx, "device:1")
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"1","v":2}`, string(got))

			vals, err := s.MGet(ctx, "device:2", "device:nope", "user:1")
			require.NoError(t, err)
			require.Len(t, vals, 3)
			assert.JSONEq(t, `{"id":"2"}`, string(vals[0]))
			assert.Nil(t, vals[1])
			assert.JSONEq(t, `{"id":"u1"}`, string(vals[2]))

			recs, err := s.ScanPrefix(ctx, "device:")
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "device:1", recs[0].Key)
			assert.Equal(t, "device:2", recs[1].Key)

			require.NoError(t, s.Delete(ctx, "device:1", "device:nope"))
			_, err = s.Get(ctx, "device:1")
			assert.ErrorIs(t, err, ErrNotFound)

			empty, err := s.MGet(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

type counter struct {
	N int `json:"n"`
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.new(t)

			err := UpdateJSON(ctx, s, "c", func(cur counter, exists bool) (counter, error) {
				assert.False(t, exists)
				cur.N++
				return cur, nil
			})
			require.NoError(t, err)

			boom := errors.New("boom")
			err = UpdateJSON(ctx, s, "c", func(cur counter, exists bool) (counter, error) {
				assert.True(t, exists)
				return counter{N: 99}, boom
			})
			assert.ErrorIs(t, err, boom)

			err = s.Update(ctx, "c", func([]byte) ([]byte, error) { return nil, ErrSkip })
			require.NoError(t, err)

			c, err := GetJSON[counter](ctx, s, "c")
			require.NoError(t, err)
			assert.Equal(t, 1, c.N, "failed and skipped updates leave the record alone")

			require.NoError(t, s.Update(ctx, "c", func([]byte) ([]byte, error) { return nil, nil }))
			_, err = s.Get(ctx, "c")
			assert.ErrorIs(t, err, ErrNotFound, "returning nil deletes the record")
		})
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	for _, b := range backends() {
		if !b.concurrent {
			continue
		}
		t.Run(b.name, func(t *testing.T) {
			s := b.new(t)
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, UpdateJSON(ctx, s, "c", func(cur counter, _ bool) (counter, error) {
						cur.N++
						return cur, nil
					}))
				}()
			}
			wg.Wait()

			c, err := GetJSON[counter](ctx, s, "c")
			require.NoError(t, err)
			assert.Equal(t, 20, c.N)
		})
	}
}

func TestRedisUpdateConflict(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedis(t)
	require.NoError(t, s.Set(ctx, "k", []byte("0")))

	attempts := 0
	err := s.Update(ctx, "k", func(cur []byte) ([]byte, error) {
		attempts++
		require.NoError(t, mr.Set("k", "changed elsewhere"))
		return []byte("mine"), nil
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxUpdateAttempts, attempts)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "changed elsewhere", string(got))
}

func TestScanJSONSkipsBadRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SetJSON(ctx, s, "user:1", counter{N: 1}))
	require.NoError(t, s.Set(ctx, "user:2", []byte("not json")))

	got, err := ScanJSON[counter](ctx, s, "user:")
	require.NoError(t, err)
	assert.Equal(t, []counter{{N: 1}}, got)
}

func TestRedisScanEscapesGlob(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedis(t)
	require.NoError(t, s.Set(ctx, "a*b:1", []byte("1")))
	require.NoError(t, s.Set(ctx, "axb:1", []byte("2")))

	recs, err := s.ScanPrefix(ctx, "a*b:")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a*b:1", recs[0].Key)
}
