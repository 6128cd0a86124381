package list_waitlist

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ListWaitlistQuery query параметры запроса
type ListWaitlistQuery struct {
	Date   string `validate:"required,date"`
	Time   string `validate:"omitempty,timeofday"`
	Status string `validate:"omitempty,oneof=waiting notified expired booked"`
}

// EntryResponse HTTP response model записи листа ожидания
type EntryResponse struct {
	ID             int64      `json:"id"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	PatientID      string     `json:"patientId"`
	PatientContact string     `json:"patientContact,omitempty"`
	Priority       int        `json:"priority"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	NotifiedAt     *time.Time `json:"notifiedAt,omitempty"`
}

// ParseQuery извлекает параметры из URL
func ParseQuery(values url.Values) ListWaitlistQuery {
	return ListWaitlistQuery{
		Date:   values.Get("date"),
		Time:   values.Get("time"),
		Status: values.Get("status"),
	}
}

// ToServiceRequest конвертирует параметры в модель сервиса
func (q *ListWaitlistQuery) ToServiceRequest(serviceID string) (*models.ListRequest, error) {
	date, err := domain.ParseDate(q.Date)
	if err != nil {
		return nil, err
	}

	return &models.ListRequest{
		ServiceID: serviceID,
		Date:      date,
		Time:      types.TimeString(q.Time),
		Status:    domain.WaitlistStatus(q.Status),
	}, nil
}

// FromDomainList конвертирует записи в HTTP response
func FromDomainList(entries []*domain.WaitlistEntry) []EntryResponse {
	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, EntryResponse{
			ID:             e.ID,
			Date:           e.Date.Format(domain.DateFormat),
			Time:           e.Time.String(),
			PatientID:      e.PatientID,
			PatientContact: e.PatientContact,
			Priority:       e.Priority,
			Status:         string(e.Status),
			CreatedAt:      e.CreatedAt,
			NotifiedAt:     e.NotifiedAt,
		})
	}
	return resp
}
