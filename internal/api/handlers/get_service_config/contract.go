package get_service_config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	Get(ctx context.Context, serviceID string) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
