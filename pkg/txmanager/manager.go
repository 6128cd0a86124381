package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

var (
	// ErrSerialization returned when Postgres aborts a serializable transaction (40001, 40P01).
	// The manager never retries; the caller decides.
	ErrSerialization = errors.New("txmanager: serialization failure")

	// ErrTransaction returned on begin/commit failures
	ErrTransaction = errors.New("txmanager: transaction error")
)

const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

type hooksKey struct{}

type commitHooks struct {
	mu  sync.Mutex
	fns []func()
}

func (h *commitHooks) add(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run() {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// AfterCommit runs fn once the transaction carried by ctx commits.
// Outside a managed transaction fn runs immediately; on rollback fn is dropped.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(hooksKey{}).(*commitHooks)
	if !ok || !dbmetrics.IsInTransaction(ctx) {
		fn()
		return
	}
	hooks.add(fn)
}

// TxBeginner starts transactions. Implemented by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Manager runs functions inside database transactions
type Manager struct {
	db TxBeginner
}

// NewTransactionManager creates a transaction manager
func NewTransactionManager(db TxBeginner) *Manager {
	return &Manager{db: db}
}

// DoSerializable runs fn in a SERIALIZABLE transaction stored in the context.
// Nested calls reuse the outer transaction.
func (m *Manager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// Do runs fn in a READ COMMITTED transaction
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

func (m *Manager) do(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	hooks := &commitHooks{}
	txCtx := context.WithValue(dbmetrics.WithTx(ctx, tx), hooksKey{}, hooks)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: commit: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	hooks.run()
	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
}
