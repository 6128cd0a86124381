package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const keyPrefix = "schedule:template:"

// Cache read-through кэш шаблонов расписания в Redis.
// Ошибки Redis не ломают чтение: запрос уходит в хранилище
type Cache struct {
	store   Store
	redis   RedisClient
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewCache создает кэш поверх хранилища шаблонов
func NewCache(store Store, rdb RedisClient, ttl time.Duration, metrics Metrics, logger Logger) *Cache {
	return &Cache{
		store:   store,
		redis:   rdb,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

type cachedSlot struct {
	Time    types.TimeString `json:"time"`
	Enabled bool             `json:"enabled"`
	StaffID *string          `json:"staff_id,omitempty"`
}

type cachedTemplate struct {
	ServiceID   string                        `json:"service_id"`
	WeeklySlots map[time.Weekday][]cachedSlot `json:"weekly_slots"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// GetTemplate отдает шаблон из кэша, а при промахе читает хранилище и кладет результат в кэш.
// Внутри транзакции кэш не используется, чтобы не читать устаревшие данные
func (c *Cache) GetTemplate(ctx context.Context, serviceID string) (*domain.ScheduleTemplate, error) {
	if dbmetrics.IsInTransaction(ctx) {
		return c.store.GetTemplate(ctx, serviceID)
	}

	key := keyPrefix + serviceID

	raw, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		template, decodeErr := decode(raw)
		if decodeErr == nil {
			c.metrics.IncTemplateCache("hit")
			return template, nil
		}
		c.logger.Warn("GetTemplate: drop corrupted cache entry %s: %v", key, decodeErr)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("GetTemplate: redis get %s: %v", key, err)
	}

	c.metrics.IncTemplateCache("miss")

	template, err := c.store.GetTemplate(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	payload, err := encode(template)
	if err != nil {
		c.logger.Warn("GetTemplate: encode template %s: %v", serviceID, err)
		return template, nil
	}

	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("GetTemplate: redis set %s: %v", key, err)
	}

	return template, nil
}

// PutTemplate пишет шаблон в хранилище и сбрасывает запись кэша.
// Внутри транзакции запись сбрасывается только после коммита
func (c *Cache) PutTemplate(ctx context.Context, template *domain.ScheduleTemplate) error {
	if err := c.store.PutTemplate(ctx, template); err != nil {
		return err
	}

	serviceID := template.ServiceID
	txmanager.AfterCommit(ctx, func() {
		c.Invalidate(context.WithoutCancel(ctx), serviceID)
	})
	return nil
}

// Invalidate удаляет шаблон услуги из кэша
func (c *Cache) Invalidate(ctx context.Context, serviceID string) {
	if err := c.redis.Del(ctx, keyPrefix+serviceID).Err(); err != nil {
		c.logger.Warn("Invalidate: redis del %s: %v", serviceID, err)
	}
}

func encode(template *domain.ScheduleTemplate) ([]byte, error) {
	dto := cachedTemplate{
		ServiceID:   template.ServiceID,
		WeeklySlots: make(map[time.Weekday][]cachedSlot, len(template.WeeklySlots)),
		UpdatedAt:   template.UpdatedAt,
	}
	for day, slots := range template.WeeklySlots {
		items := make([]cachedSlot, len(slots))
		for i, slot := range slots {
			items[i] = cachedSlot{Time: slot.Time, Enabled: slot.Enabled, StaffID: slot.StaffID}
		}
		dto.WeeklySlots[day] = items
	}
	return json.Marshal(dto)
}

func decode(raw []byte) (*domain.ScheduleTemplate, error) {
	var dto cachedTemplate
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}
	if dto.ServiceID == "" {
		return nil, fmt.Errorf("missing service id")
	}

	template := domain.NewScheduleTemplate(dto.ServiceID)
	template.UpdatedAt = dto.UpdatedAt
	for day, items := range dto.WeeklySlots {
		if day < time.Sunday || day > time.Saturday {
			return nil, fmt.Errorf("weekday %d out of range", day)
		}
		slots := make([]domain.Slot, len(items))
		for i, item := range items {
			if err := item.Time.Validate(); err != nil {
				return nil, err
			}
			slots[i] = domain.Slot{Time: item.Time, Enabled: item.Enabled, StaffID: item.StaffID}
		}
		template.WeeklySlots[day] = slots
	}
	return template, nil
}
