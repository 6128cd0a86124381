package get_availability

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// SlotResponse HTTP response model слота
type SlotResponse struct {
	Time          string  `json:"time"`
	TotalCapacity int     `json:"totalCapacity"`
	Booked        int     `json:"booked"`
	Available     int     `json:"available"`
	Enabled       bool    `json:"enabled"`
	StaffID       *string `json:"staffId,omitempty"`
	Status        string  `json:"status"`
}

// SummaryResponse итоги по дате
type SummaryResponse struct {
	TotalSlots     int `json:"totalSlots"`
	TotalCapacity  int `json:"totalCapacity"`
	TotalBooked    int `json:"totalBooked"`
	TotalAvailable int `json:"totalAvailable"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ServiceID   string          `json:"serviceId"`
	Date        string          `json:"date"`
	Blocked     bool            `json:"blocked"`
	BlockReason string          `json:"blockReason,omitempty"`
	Slots       []SlotResponse  `json:"slots"`
	Summary     SummaryResponse `json:"summary"`
}

// FromDomain конвертирует доступность в HTTP response
func FromDomain(a *domain.Availability) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(a.Slots))
	for _, s := range a.Slots {
		slots = append(slots, SlotResponse{
			Time:          s.Time.String(),
			TotalCapacity: s.TotalCapacity,
			Booked:        s.Booked,
			Available:     s.Available,
			Enabled:       s.Enabled,
			StaffID:       s.StaffID,
			Status:        string(s.Status),
		})
	}

	return &AvailabilityResponse{
		ServiceID:   a.ServiceID,
		Date:        a.Date.Format(domain.DateFormat),
		Blocked:     a.Blocked,
		BlockReason: a.BlockReason,
		Slots:       slots,
		Summary: SummaryResponse{
			TotalSlots:     a.Summary.TotalSlots,
			TotalCapacity:  a.Summary.TotalCapacity,
			TotalBooked:    a.Summary.TotalBooked,
			TotalAvailable: a.Summary.TotalAvailable,
		},
	}
}
