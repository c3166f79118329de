package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/princeprakhar/device-catalog/internal/models"
)

var keyColumn = clause.Column{Name: "key"}

// GormStore keeps records as rows of the kv_records table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var rec models.KVRecord
	err := g.db.WithContext(ctx).Where(&models.KVRecord{Key: key}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (g *GormStore) Set(ctx context.Context, key string, value []byte) error {
	return upsert(g.db.WithContext(ctx), key, value)
}

func upsert(db *gorm.DB, key string, value []byte) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{keyColumn},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.KVRecord{Key: key, Value: string(value)}).Error
}

func (g *GormStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return g.db.WithContext(ctx).
		Where(clause.IN{Column: keyColumn, Values: toValues(keys)}).
		Delete(&models.KVRecord{}).Error
}

func (g *GormStore) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	var recs []models.KVRecord
	err := g.db.WithContext(ctx).
		Where(clause.IN{Column: keyColumn, Values: toValues(keys)}).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]string, len(recs))
	for _, r := range recs {
		byKey[r.Key] = r.Value
	}
	for i, k := range keys {
		if v, ok := byKey[k]; ok {
			out[i] = []byte(v)
		}
	}
	return out, nil
}

func (g *GormStore) ScanPrefix(ctx context.Context, prefix string) ([]Record, error) {
	var recs []models.KVRecord
	err := g.db.WithContext(ctx).
		Where(clause.Like{Column: keyColumn, Value: prefix + "%"}).
		Order(clause.OrderByColumn{Column: keyColumn}).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		// LIKE treats _ and % in the prefix as wildcards.
		if strings.HasPrefix(r.Key, prefix) {
			out = append(out, Record{Key: r.Key, Value: []byte(r.Value)})
		}
	}
	return out, nil
}

// Update reads and writes the row inside one transaction. On Postgres the
// row is locked with SELECT ... FOR UPDATE.
func (g *GormStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var rec models.KVRecord
		var cur []byte
		err := q.Where(&models.KVRecord{Key: key}).Take(&rec).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return err
		default:
			cur = []byte(rec.Value)
		}

		next, err := fn(cur)
		if err != nil {
			return err
		}
		if next == nil {
			return tx.Where(&models.KVRecord{Key: key}).Delete(&models.KVRecord{}).Error
		}
		return upsert(tx, key, next)
	})
	if errors.Is(err, ErrSkip) {
		return nil
	}
	return err
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toValues(keys []string) []interface{} {
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}
