package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий блокировок услуг по датам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert блокирует услугу на список дат
// Повторная блокировка той же даты только обновляет причину
func (r *Repository) Upsert(ctx context.Context, serviceID string, dates []time.Time, reason string) error {
	if len(dates) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("service_blocks").
		Columns("service_id", "block_date", "reason")
	for _, date := range dates {
		insertBuilder = insertBuilder.Values(serviceID, domain.DateOnly(date), reason)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (service_id, block_date) DO UPDATE SET reason = EXCLUDED.reason, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// GetBlocks получает блокировки услуги в диапазоне дат включительно
func (r *Repository) GetBlocks(ctx context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id", "block_date", "reason", "created_at", "updated_at").
		From("service_blocks").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.GtOrEq{"block_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"block_date": domain.DateOnly(to)}).
		OrderBy("block_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.ServiceBlock, 0)
	for rows.Next() {
		var (
			block                domain.ServiceBlock
			reason               sql.NullString
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&block.ServiceID, &block.Date, &reason, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetBlocks - scan row: %w", ErrScanRow, err)
		}
		block.Date = domain.DateOnly(block.Date)
		block.Reason = reason.String
		block.CreatedAt = createdAt.Time
		block.UpdatedAt = updatedAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBlocks - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete снимает блокировку с даты
func (r *Repository) Delete(ctx context.Context, serviceID string, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_blocks").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"block_date": domain.DateOnly(date)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
