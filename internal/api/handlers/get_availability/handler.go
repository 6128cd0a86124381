package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_availability"
)

const (
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotConfigured = "услуга не настроена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{ServiceID: serviceID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotConfigured):
			h.logger.Warn("GET /services/{id}/availability - Service not configured: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrUnavailable):
			h.logger.Error("GET /services/{id}/availability - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /services/{id}/availability - Failed to get availability: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/availability - Availability retrieved: service_id=%s, date=%s, slots=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
