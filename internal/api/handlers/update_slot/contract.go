package update_slot

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
)

type ConfigService interface {
	UpdateSlot(ctx context.Context, req *models.UpdateSlotRequest) (*models.TemplateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
