package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

func newManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTransactionManager(dbmetrics.Wrap(db, nil)), mock
}

func TestDoSerializableCommits(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	called := false
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		called = true
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableRollsBackOnError(t *testing.T) {
	mgr, mock := newManager(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableMapsSerializationFailure(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableNested(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return mgr.Do(ctx, func(inner context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(inner))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommitRunsOnlyAfterCommit(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	var calls []string
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func() { calls = append(calls, "outer") })
		return mgr.DoSerializable(ctx, func(inner context.Context) error {
			AfterCommit(inner, func() { calls = append(calls, "nested") })
			assert.Empty(t, calls, "hooks must wait for commit")
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "nested"}, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommitDroppedOnRollback(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	called := false
	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func() { called = true })
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAfterCommitDroppedOnCommitFailure(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})

	called := false
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		AfterCommit(ctx, func() { called = true })
		return nil
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.False(t, called)
}

func TestAfterCommitOutsideTransactionRunsNow(t *testing.T) {
	called := false
	AfterCommit(context.Background(), func() { called = true })
	assert.True(t, called)
}

func TestBeginFailure(t *testing.T) {
	mgr, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		t.Fatal("must not be called")
		return nil
	})

	assert.ErrorIs(t, err, ErrTransaction)
}
