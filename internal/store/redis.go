package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/princeprakhar/device-catalog/pkg/logger"
)

const maxUpdateAttempts = 10

// RedisStore keeps records as plain Redis strings.
type RedisStore struct {
	client *redis.Client
}

// NewRedisClient builds a client from either a redis:// URL or a host:port
// address.
func NewRedisClient(addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}
	client := redis.NewClient(opts)
	client.AddHook(errorHook{})
	return client, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return v, err
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisStore) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[i] = []byte(s)
		}
	}
	return out, nil
}

func (r *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]Record, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, escapeGlob(prefix)+"*", 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	keys = dedupe(keys)

	vals, err := r.MGet(ctx, keys...)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(keys))
	for i, k := range keys {
		if vals[i] != nil {
			out = append(out, Record{Key: k, Value: vals[i]})
		}
	}
	return out, nil
}

// Update uses WATCH/MULTI so the write only lands if key was not modified
// since it was read; a lost race is retried a bounded number of times.
func (r *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			cur, err = nil, nil
		}
		if err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, key)
			} else {
				pipe.Set(ctx, key, next, 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrSkip) {
			return nil
		}
		return err
	}
	logger.WithFields(map[string]interface{}{"key": key}).Warn("redis update gave up after repeated conflicts")
	return ErrConflict
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}

func dedupe(sorted []string) []string {
	out := make([]string, 0, len(sorted))
	for _, k := range sorted {
		if len(out) == 0 || out[len(out)-1] != k {
			out = append(out, k)
		}
	}
	return out
}

type errorHook struct{}

func (errorHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (errorHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			redisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (errorHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) && !errors.Is(err, redis.TxFailedErr) {
			redisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}
