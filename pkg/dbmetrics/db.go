package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// DefaultStatsInterval how often pool statistics are exported
const DefaultStatsInterval = 15 * time.Second

// DB wraps *sql.DB and records query durations.
// A nil collector turns the wrapper into a plain pass-through.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap wraps db without starting the pool stats collector
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault wraps db and exports pool statistics every DefaultStatsInterval until stopCh is closed
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(DefaultStatsInterval, stopCh)
	return wrapped
}

// ExecContext implements DBExecutor
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe(query, time.Now())
	return d.db.ExecContext(ctx, query, args...)
}

// QueryContext implements DBExecutor
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe(query, time.Now())
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRowContext implements DBExecutor
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe(query, time.Now())
	return d.db.QueryRowContext(ctx, query, args...)
}

// BeginTx starts a transaction whose queries are recorded as well
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// PingContext checks the connection
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) observe(query string, started time.Time) {
	d.metrics.ObserveQuery(operation(query), time.Since(started).Seconds())
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.SetPoolStats(stats.OpenConnections, stats.InUse, stats.Idle)
		}
	}
}

// Tx transaction wrapper recording query durations
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext implements DBExecutor
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer t.observe(query, time.Now())
	return t.tx.ExecContext(ctx, query, args...)
}

// QueryContext implements DBExecutor
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer t.observe(query, time.Now())
	return t.tx.QueryContext(ctx, query, args...)
}

// QueryRowContext implements DBExecutor
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer t.observe(query, time.Now())
	return t.tx.QueryRowContext(ctx, query, args...)
}

// Commit commits the transaction
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) observe(query string, started time.Time) {
	t.metrics.ObserveQuery(operation(query), time.Since(started).Seconds())
}

// operation first SQL keyword in lower case, used as the metric label
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
