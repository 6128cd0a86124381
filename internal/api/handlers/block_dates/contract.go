package block_dates

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks/models"
)

type BlockService interface {
	BlockDates(ctx context.Context, req *models.BlockRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
