package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	GetTemplate(ctx context.Context, serviceID string) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
