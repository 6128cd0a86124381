package unblock_date

import (
	"context"
	"time"
)

type BlockService interface {
	Unblock(ctx context.Context, serviceID string, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
