package waitlist

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
)

var entryColumns = []string{
	"id",
	"service_id",
	"entry_date",
	"entry_time",
	"patient_id",
	"patient_contact",
	"priority",
	"status",
	"created_at",
	"notified_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет пациента в лист ожидания
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	if !entry.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, entry.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns("service_id", "entry_date", "entry_time", "patient_id", "patient_contact", "priority", "status").
		Values(
			entry.ServiceID,
			domain.DateOnly(entry.Date),
			entry.Time,
			entry.PatientID,
			entry.PatientContact,
			entry.Priority,
			entry.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	entry.Date = domain.DateOnly(entry.Date)

	return entry, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	return entry, nil
}

// Query получает записи по ключу слота в порядке обслуживания:
// приоритет, затем время создания, затем id.
// Пустой список статусов означает записи в любом статусе
func (r *Repository) Query(ctx context.Context, key domain.WaitlistKey, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"service_id": key.ServiceID}).
		Where(squirrel.Eq{"entry_date": domain.DateOnly(key.Date)})

	if !key.Time.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"entry_time": key.Time})
	}

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": values})
	}

	query, args, err := selectBuilder.
		OrderBy("priority ASC", "created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Query - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryEntries(ctx, executor, query, args)
}

// ListNotifiedBefore получает уведомленные записи, уведомление по которым старше cutoff
func (r *Repository) ListNotifiedBefore(ctx context.Context, cutoff time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"status": string(domain.WaitlistNotified)}).
		Where(squirrel.Lt{"notified_at": cutoff}).
		OrderBy("notified_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNotifiedBefore - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryEntries(ctx, executor, query, args)
}

// UpdateStatus переводит запись из статуса from в статус to
// Условное обновление: возвращает false, если запись уже не в статусе from
// (например, её забрал параллельный процесс продвижения очереди)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.WaitlistStatus) (bool, error) {
	if !from.IsValid() || !to.IsValid() {
		return false, fmt.Errorf("%w: %q -> %q", ErrInvalidStatus, from, to)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("waitlist_entries").
		Set("status", string(to)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)})

	if to == domain.WaitlistNotified {
		updateBuilder = updateBuilder.Set("notified_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func (r *Repository) queryEntries(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.WaitlistEntry, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var (
		entry      domain.WaitlistEntry
		contact    sql.NullString
		notifiedAt sql.NullTime
	)

	err := row.Scan(
		&entry.ID,
		&entry.ServiceID,
		&entry.Date,
		&entry.Time,
		&entry.PatientID,
		&contact,
		&entry.Priority,
		&entry.Status,
		&entry.CreatedAt,
		&notifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	if !entry.Status.IsValid() {
		return nil, fmt.Errorf("%w: entry id=%d has status %q", ErrMalformedRecord, entry.ID, entry.Status)
	}
	if err := entry.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: entry id=%d: %v", ErrMalformedRecord, entry.ID, err)
	}

	entry.Date = domain.DateOnly(entry.Date)
	entry.PatientContact = contact.String
	if notifiedAt.Valid {
		t := notifiedAt.Time
		entry.NotifiedAt = &t
	}

	return &entry, nil
}
