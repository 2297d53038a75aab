// Package postgres implements the repository interfaces over PostgreSQL
// using sqlx and hand-written SQL. All multi-row invariants (slot release,
// notification fan-out, rating aggregates, conflict re-checks) are enforced
// inside single transactions here.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lawlink/lawlink-api/internal/repository"
	"github.com/lawlink/lawlink-api/pkg/metrics"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	metrics *metrics.Metrics
}

// NewBaseRepository creates a new base repository. metrics may be nil.
func NewBaseRepository(db *sqlx.DB, m *metrics.Metrics) *BaseRepository {
	return &BaseRepository{db: db, metrics: m}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// track records a database operation metric. The returned func observes the
// elapsed time when called.
func (r *BaseRepository) track(operation, table string) func() {
	if r.metrics == nil {
		return func() {}
	}
	start := time.Now()
	r.metrics.DatabaseOperations.WithLabelValues(operation, table).Inc()
	return func() {
		r.metrics.DatabaseLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// translateErr maps driver-level errors onto the repository sentinels.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
