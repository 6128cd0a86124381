package list_waitlist

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	List(ctx context.Context, req *models.ListRequest) ([]*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
