package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок дат
type BlockRepository interface {
	Upsert(ctx context.Context, serviceID string, dates []time.Time, reason string) error
	GetBlocks(ctx context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error)
	Delete(ctx context.Context, serviceID string, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
