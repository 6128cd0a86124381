package add_to_waitlist

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	Add(ctx context.Context, req *models.AddRequest) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
