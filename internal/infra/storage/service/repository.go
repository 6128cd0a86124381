package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const pqUniqueViolation = "23505"

// Repository репозиторий конфигураций услуг (вместимость, длительность, часы работы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу вместе с часами работы
// Выполняет несколько запросов, поэтому вызывающий код должен обернуть вызов в транзакцию
func (r *Repository) Create(ctx context.Context, cfg *domain.ServiceCapacityConfig) (*domain.ServiceCapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns("id", "name", "capacity", "duration_minutes", "min_gap_minutes", "kind").
		Values(cfg.ID, cfg.Name, cfg.Capacity, cfg.DurationMinutes, cfg.MinGapMinutes, cfg.Kind).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateService
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if err := r.insertHours(ctx, executor, cfg.ID, cfg.OperatingHours); err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetByID получает конфигурацию услуги и её часы работы
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ServiceCapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"capacity",
		"duration_minutes",
		"min_gap_minutes",
		"kind",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg                  domain.ServiceCapacityConfig
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.Capacity,
		&cfg.DurationMinutes,
		&cfg.MinGapMinutes,
		&cfg.Kind,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %w", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	hours, err := r.getHours(ctx, executor, id)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	cfg.OperatingHours = hours

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: service id=%s: %v", ErrMalformedRecord, id, err)
	}

	return &cfg, nil
}

// Update обновляет параметры услуги и полностью заменяет часы работы
// Вызывающий код должен обернуть вызов в транзакцию
func (r *Repository) Update(ctx context.Context, cfg *domain.ServiceCapacityConfig) (*domain.ServiceCapacityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", cfg.Name).
		Set("capacity", cfg.Capacity).
		Set("duration_minutes", cfg.DurationMinutes).
		Set("min_gap_minutes", cfg.MinGapMinutes).
		Set("kind", cfg.Kind).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("service_hours").
		Where(squirrel.Eq{"service_id": cfg.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete hours query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete hours: %w", ErrExecQuery, err)
	}

	if err := r.insertHours(ctx, executor, cfg.ID, cfg.OperatingHours); err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

func (r *Repository) insertHours(ctx context.Context, executor DBExecutor, serviceID string, hours domain.OperatingHours) error {
	if len(hours) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("service_hours").
		Columns("service_id", "weekday", "open_time", "close_time")

	// Стабильный порядок строк - удобно для тестов и логов
	for _, day := range domain.Weekdays {
		h, ok := hours[day]
		if !ok {
			continue
		}
		insertBuilder = insertBuilder.Values(serviceID, int(day), h.Open, closeValue(h.Close))
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertHours - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getHours(ctx context.Context, executor DBExecutor, serviceID string) (domain.OperatingHours, error) {
	query, args, err := psqlbuilder.Select("weekday", "open_time", "close_time").
		From("service_hours").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make(domain.OperatingHours)
	for rows.Next() {
		var (
			weekday     int
			open, close types.TimeString
		)
		if err := rows.Scan(&weekday, &open, &close); err != nil {
			return nil, fmt.Errorf("%w: getHours - scan row: %w", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			return nil, fmt.Errorf("%w: service id=%s has weekday %d", ErrMalformedRecord, serviceID, weekday)
		}
		hours[time.Weekday(weekday)] = domain.DayHours{Open: open, Close: fromCloseValue(close)}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getHours - rows error: %w", ErrScanRow, err)
	}

	return hours, nil
}

// Закрытие в полночь хранится как 00:00: lib/pq всё равно читает TIME 24:00
// как 00:00 следующего дня
func closeValue(t types.TimeString) types.TimeString {
	if t.Minutes() == types.MinutesPerDay {
		return "00:00"
	}
	return t
}

func fromCloseValue(t types.TimeString) types.TimeString {
	if t.Minutes() == 0 {
		return types.FromMinutes(types.MinutesPerDay)
	}
	return t
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
