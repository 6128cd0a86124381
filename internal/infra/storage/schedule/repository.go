package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Repository репозиторий недельных шаблонов расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplate получает недельный шаблон услуги
// Шаблон без слотов (все дни закрыты) - валидный шаблон, а не ErrTemplateNotFound
func (r *Repository) GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	headQuery, headArgs, err := psqlbuilder.Select("updated_at").
		From("schedule_templates").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build select query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, headQuery, headArgs...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - scan template: %w", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select("weekday", "slot_time", "enabled", "staff_id").
		From("schedule_slots").
		Where(squirrel.Eq{"service_id": serviceID}).
		OrderBy("weekday ASC", "slot_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - build slots query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - execute slots query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	template := domain.NewScheduleTemplate(serviceID)
	template.UpdatedAt = updatedAt.Time

	for rows.Next() {
		var (
			weekday  int
			slotTime types.TimeString
			enabled  bool
			staffID  sql.NullString
		)
		if err := rows.Scan(&weekday, &slotTime, &enabled, &staffID); err != nil {
			return nil, fmt.Errorf("%w: GetTemplate - scan slot: %w", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			return nil, fmt.Errorf("%w: service id=%s has weekday %d", ErrMalformedRecord, serviceID, weekday)
		}

		slot := domain.Slot{Time: slotTime, Enabled: enabled}
		if staffID.Valid {
			slot.StaffID = ptr.Ptr(staffID.String)
		}

		day := time.Weekday(weekday)
		template.WeeklySlots[day] = append(template.WeeklySlots[day], slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplate - rows error: %w", ErrScanRow, err)
	}

	return template, nil
}

// PutTemplate полностью заменяет шаблон услуги
// Выполняет несколько запросов, поэтому вызывающий код должен обернуть вызов в транзакцию
func (r *Repository) PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error {
	if err := validateTemplate(template); err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	upsertQuery, upsertArgs, err := psqlbuilder.Insert("schedule_templates").
		Columns("service_id", "updated_at").
		Values(template.ServiceID, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (service_id) DO UPDATE SET updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: PutTemplate - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, upsertQuery, upsertArgs...); err != nil {
		return fmt.Errorf("%w: PutTemplate - upsert template: %w", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("schedule_slots").
		Where(squirrel.Eq{"service_id": template.ServiceID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: PutTemplate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: PutTemplate - delete slots: %w", ErrExecQuery, err)
	}

	if template.TotalSlots() == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("schedule_slots").
		Columns("service_id", "weekday", "slot_time", "enabled", "staff_id")

	for _, day := range domain.Weekdays {
		for _, slot := range template.WeeklySlots[day] {
			insertBuilder = insertBuilder.Values(template.ServiceID, int(day), slot.Time, slot.Enabled, slot.StaffID)
		}
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: PutTemplate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: PutTemplate - insert slots: %w", ErrExecQuery, err)
	}

	return nil
}

// validateTemplate проверяет, что слоты каждого дня строго возрастают по времени
func validateTemplate(template *domain.ScheduleTemplate) error {
	for day, slots := range template.WeeklySlots {
		for i, slot := range slots {
			if err := slot.Time.Validate(); err != nil {
				return fmt.Errorf("%w: %s slot %d: %v", ErrMalformedRecord, day, i, err)
			}
			if i > 0 && !slots[i-1].Time.IsBefore(slot.Time) {
				return fmt.Errorf("%w: %s slots are not strictly increasing at %s", ErrMalformedRecord, day, slot.Time)
			}
		}
	}
	return nil
}
