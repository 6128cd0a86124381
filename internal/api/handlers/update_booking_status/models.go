package update_booking_status

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model. Отмена - отдельный endpoint
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed no-show"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{Status: domain.BookingStatus(r.Status)}
}
