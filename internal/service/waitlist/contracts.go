package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	Query(ctx context.Context, key domain.WaitlistKey, statuses ...domain.WaitlistStatus) ([]*domain.WaitlistEntry, error)
	ListNotifiedBefore(ctx context.Context, cutoff time.Time) ([]*domain.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.WaitlistStatus) (bool, error)
}

// Notifier отправка уведомления пациенту
type Notifier interface {
	Notify(ctx context.Context, contact, message string) error
}

// ContactResolver справочник контактов пациентов
type ContactResolver interface {
	GetContact(ctx context.Context, patientID string) (string, error)
}

// Metrics метрики листа ожидания
type Metrics interface {
	IncWaitlistPromotion(result string)
	AddWaitlistExpired(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
