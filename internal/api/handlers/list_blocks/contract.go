package list_blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type BlockService interface {
	List(ctx context.Context, serviceID string, from, to time.Time) ([]*domain.ServiceBlock, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
