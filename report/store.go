package report

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
)

// selectReports is the fixed query contract against the analytical store.
// Column list and ordering are part of the external interface.
const selectReports = `
SELECT
    client_id,
    date,
    avg_joint_angle,
    max_joint_angle,
    min_joint_angle,
    avg_pressure,
    avg_battery,
    most_common_activity
FROM user_prosthesis_reports
WHERE client_id = $1
ORDER BY date DESC`

// Querier is the subset of pgxpool.Pool the store needs. It is satisfied by
// *pgxpool.Pool and by pgxmock pools in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

var _ Querier = (*pgxpool.Pool)(nil)

// Store reads aggregate rows for a scope key, newest date first.
type Store struct {
	db      Querier
	timeout time.Duration
}

// NewStore creates a store over an established pool (or a mock in tests).
func NewStore(db Querier, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// Open creates a pgx connection pool for the analytical store and verifies
// connectivity with a ping.
func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse reports DSN")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to create reports pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.Wrapf(err, "failed to ping reports store")
	}

	return pool, nil
}

// FetchByScopeKey returns all aggregate rows for the scope key. A query or
// connection fault is reported as ErrStoreUnavailable; zero rows is not an
// error here — the caller distinguishes "no data yet" from a fault.
func (s *Store) FetchByScopeKey(ctx context.Context, scopeKey string) ([]Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var records []Record
	if err := pgxscan.Select(ctx, s.db, &records, selectReports, scopeKey); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrStoreUnavailable, err)
	}

	return records, nil
}

// Health verifies the store connection is alive.
func (s *Store) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.Ping(ctx)
}
