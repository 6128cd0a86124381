package create_service

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
