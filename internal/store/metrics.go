package store

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_operations_total",
			Help: "Record store operations by operation and result",
		},
		[]string{"op", "result"},
	)

	redisErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_redis_errors_total",
			Help: "Redis command errors by command",
		},
		[]string{"command"},
	)
)

type instrumented struct {
	next Store
}

// WithMetrics counts every operation of s by result.
func WithMetrics(s Store) Store {
	return instrumented{next: s}
}

func observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrConflict):
		result = "conflict"
	default:
		result = "error"
	}
	operations.WithLabelValues(op, result).Inc()
}

func (s instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.next.Get(ctx, key)
	observe("get", err)
	return v, err
}

func (s instrumented) Set(ctx context.Context, key string, value []byte) error {
	err := s.next.Set(ctx, key, value)
	observe("set", err)
	return err
}

func (s instrumented) Delete(ctx context.Context, keys ...string) error {
	err := s.next.Delete(ctx, keys...)
	observe("delete", err)
	return err
}

func (s instrumented) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	v, err := s.next.MGet(ctx, keys...)
	observe("mget", err)
	return v, err
}

func (s instrumented) ScanPrefix(ctx context.Context, prefix string) ([]Record, error) {
	v, err := s.next.ScanPrefix(ctx, prefix)
	observe("scan", err)
	return v, err
}

// Update errors returned by the caller's function count as "error" too.
func (s instrumented) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := s.next.Update(ctx, key, fn)
	observe("update", err)
	return err
}

func (s instrumented) Close() error {
	return s.next.Close()
}
