package promote_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type WaitlistService interface {
	Promote(ctx context.Context, serviceID string, date time.Time, at types.TimeString) (*models.PromotionResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
