// Package store persists schemes, patients and their enrollments and enforces
// the referential rules between them. Every write runs in one transaction on a
// pooled connection; a failure at any point leaves the tables unchanged.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-schemes-server/internal/config"
	"hospital-schemes-server/internal/models"
)

// Recorder observes store operations. metrics.Metrics satisfies it.
type Recorder interface {
	ObserveOperation(operation string, err error)
	AddClaimed(amount decimal.Decimal)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, error) {}
func (nopRecorder) AddClaimed(decimal.Decimal)     {}

// Store is the data store for the scheme, patient and enrollment tables.
type Store struct {
	db       *gorm.DB
	recorder Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithRecorder attaches an operation recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New wraps an already opened and migrated connection pool.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the configured backend and creates missing tables.
// Connection and migration failures are reported as ErrStorageUnavailable.
func Open(cfg config.DatabaseConfig, opts ...Option) (*Store, error) {
	db, err := models.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := models.Migrate(db); err != nil {
		_ = models.CloseDB(db)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return New(db, opts...), nil
}

// DB exposes the underlying pool.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that a pooled connection can reach the backend.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return models.CloseDB(s.db)
}

func (s *Store) finish(op string, err error) error {
	err = classify(op, err)
	s.recorder.ObserveOperation(op, err)
	return err
}

// transaction runs fn inside a transaction bound to ctx.
func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// lockShared takes a shared row lock where the dialect supports it so a
// concurrent delete cannot remove a row that is about to be referenced.
func lockShared(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"})
}

func exists(tx *gorm.DB, model any, column string, id uint) (bool, error) {
	var ids []uint
	err := lockShared(tx).Model(model).Where(column+" = ?", id).Limit(1).Pluck(column, &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func requireText(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "is required")
	}
	return value, nil
}

func requireDate(field string, value time.Time) (time.Time, error) {
	if value.IsZero() {
		return time.Time{}, invalid(field, "is required")
	}
	return models.Date(value), nil
}

func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeAmount enforces the DECIMAL(10,2) contract: non-negative, at most
// two fractional digits, within column range.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Decimal{}, invalid("amt_claimed", "must not be negative")
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Decimal{}, invalid("amt_claimed", "must have at most two decimal places")
	}
	if amount.GreaterThan(models.MaxAmount) {
		return decimal.Decimal{}, invalid("amt_claimed", "exceeds "+models.MaxAmount.StringFixed(2))
	}
	return amount.Round(2), nil
}
