package schedule

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Store хранилище шаблонов, которое оборачивает кэш
type Store interface {
	GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error)
	PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error
}

// RedisClient подмножество команд redis, используемое кэшем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Metrics счетчик попаданий в кэш
type Metrics interface {
	IncTemplateCache(result string)
}

type Logger interface {
	Warn(format string, v ...interface{})
}
