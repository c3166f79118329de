// Package store is the key-value record store every service persists
// through. Values are JSON documents; backends are an in-process map, Redis
// and a SQL table via gorm.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("store: key not found")
	// ErrConflict is returned by Update when a concurrent writer kept winning.
	ErrConflict = errors.New("store: concurrent update conflict")
	// ErrSkip may be returned by an UpdateFunc to leave the record unchanged.
	ErrSkip = errors.New("store: update skipped")
)

// Record is one key/value pair returned by a prefix scan.
type Record struct {
	Key   string
	Value []byte
}

// UpdateFunc receives the current value (nil when the key is missing) and
// returns the value to write. Returning nil deletes the key.
type UpdateFunc func(current []byte) ([]byte, error)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// MGet returns one entry per key, nil for missing keys.
	MGet(ctx context.Context, keys ...string) ([][]byte, error)
	// ScanPrefix returns every record whose key starts with prefix, sorted
	// by key.
	ScanPrefix(ctx context.Context, prefix string) ([]Record, error)
	// Update atomically applies fn to the record at key. An error from fn
	// aborts the update and is returned unchanged, except ErrSkip which
	// aborts it silently.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

// GetJSON decodes the record at key into a new T.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding %s: %w", key, err)
	}
	return out, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// UpdateJSON runs an atomic read-modify-write of a JSON document. exists is
// false when the key was missing and cur is the zero value.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(cur T, exists bool) (T, error)) error {
	return s.Update(ctx, key, func(raw []byte) ([]byte, error) {
		var cur T
		exists := raw != nil
		if exists {
			if err := json.Unmarshal(raw, &cur); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", key, err)
			}
		}
		next, err := fn(cur, exists)
		if err != nil {
			return nil, err
		}
		return json.Marshal(next)
	})
}

// ScanJSON decodes every record under prefix. Records that fail to decode
// are skipped.
func ScanJSON[T any](ctx context.Context, s Store, prefix string) ([]T, error) {
	records, err := s.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		var v T
		if err := json.Unmarshal(r.Value, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
