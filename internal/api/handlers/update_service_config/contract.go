package update_service_config

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	Update(ctx context.Context, serviceID string, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
