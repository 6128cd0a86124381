package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BlockRequest запрос на блокировку дат услуги
type BlockRequest struct {
	ServiceID string
	Dates     []time.Time
	Reason    string
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ServiceID string    `json:"serviceId"`
	Date      string    `json:"date"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainBlocks конвертирует список блокировок в DTO
func FromDomainBlocks(blocks []*domain.ServiceBlock) []BlockResponse {
	resp := make([]BlockResponse, 0, len(blocks))
	for _, b := range blocks {
		resp = append(resp, BlockResponse{
			ServiceID: b.ServiceID,
			Date:      b.Date.Format(domain.DateFormat),
			Reason:    b.Reason,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return resp
}
