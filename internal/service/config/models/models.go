package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// CreateServiceRequest запрос на создание конфигурации услуги
type CreateServiceRequest struct {
	ID              string
	Name            string
	Capacity        int
	DurationMinutes int
	MinGapMinutes   int
	Kind            domain.ServiceKind
	OperatingHours  domain.OperatingHours
}

// UpdateServiceRequest запрос на обновление конфигурации услуги.
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Name            *string
	Capacity        *int
	DurationMinutes *int
	MinGapMinutes   *int
	Kind            *domain.ServiceKind
	OperatingHours  domain.OperatingHours // nil - часы не меняются

	// Сохранить enabled/staff у слотов с тем же временем при перегенерации
	PreserveAnnotations bool
}

// UpdateSlotRequest точечное изменение слота шаблона
type UpdateSlotRequest struct {
	ServiceID string
	Weekday   time.Weekday
	Time      types.TimeString
	Enabled   *bool
	StaffID   *string // пустая строка снимает сотрудника
}

// Response модели

// HoursResponse часы работы за день
type HoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ServiceResponse ответ с данными конфигурации услуги
type ServiceResponse struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Capacity        int                      `json:"capacity"`
	DurationMinutes int                      `json:"durationMinutes"`
	MinGapMinutes   int                      `json:"minGapMinutes"`
	Kind            string                   `json:"kind"`
	OperatingHours  map[string]HoursResponse `json:"operatingHours"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// SlotResponse слот шаблона
type SlotResponse struct {
	Time    string  `json:"time"`
	Enabled bool    `json:"enabled"`
	StaffID *string `json:"staffId,omitempty"`
}

// TemplateResponse недельный шаблон услуги. Закрытые дни - пустые списки
type TemplateResponse struct {
	ServiceID string                    `json:"serviceId"`
	Days      map[string][]SlotResponse `json:"days"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// Методы конвертации

// ToDomainConfig конвертирует CreateServiceRequest в domain модель
func (r *CreateServiceRequest) ToDomainConfig() *domain.ServiceCapacityConfig {
	return &domain.ServiceCapacityConfig{
		ID:              r.ID,
		Name:            r.Name,
		Capacity:        r.Capacity,
		DurationMinutes: r.DurationMinutes,
		MinGapMinutes:   r.MinGapMinutes,
		Kind:            r.Kind,
		OperatingHours:  r.OperatingHours,
	}
}

// Apply возвращает копию конфигурации с примененными изменениями
func (r *UpdateServiceRequest) Apply(current *domain.ServiceCapacityConfig) *domain.ServiceCapacityConfig {
	next := *current
	if r.Name != nil {
		next.Name = *r.Name
	}
	if r.Capacity != nil {
		next.Capacity = *r.Capacity
	}
	if r.DurationMinutes != nil {
		next.DurationMinutes = *r.DurationMinutes
	}
	if r.MinGapMinutes != nil {
		next.MinGapMinutes = *r.MinGapMinutes
	}
	if r.Kind != nil {
		next.Kind = *r.Kind
	}
	if r.OperatingHours != nil {
		next.OperatingHours = r.OperatingHours
	}
	return &next
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ServiceCapacityConfig) *ServiceResponse {
	if c == nil {
		return nil
	}

	hours := make(map[string]HoursResponse, len(c.OperatingHours))
	for day, h := range c.OperatingHours {
		hours[domain.WeekdayName(day)] = HoursResponse{Open: h.Open.String(), Close: h.Close.String()}
	}

	return &ServiceResponse{
		ID:              c.ID,
		Name:            c.Name,
		Capacity:        c.Capacity,
		DurationMinutes: c.DurationMinutes,
		MinGapMinutes:   c.MinGapMinutes,
		Kind:            string(c.Kind),
		OperatingHours:  hours,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// FromDomainTemplate конвертирует шаблон в DTO, перечисляя все дни недели
func FromDomainTemplate(t *domain.ScheduleTemplate) *TemplateResponse {
	if t == nil {
		return nil
	}

	days := make(map[string][]SlotResponse, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		slots := t.SlotsFor(day)
		resp := make([]SlotResponse, 0, len(slots))
		for _, slot := range slots {
			resp = append(resp, SlotResponse{
				Time:    slot.Time.String(),
				Enabled: slot.Enabled,
				StaffID: slot.StaffID,
			})
		}
		days[domain.WeekdayName(day)] = resp
	}

	return &TemplateResponse{
		ServiceID: t.ServiceID,
		Days:      days,
		UpdatedAt: t.UpdatedAt,
	}
}
