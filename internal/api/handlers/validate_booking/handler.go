package validate_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	validateBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/validate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotConfigured      = "услуга не настроена"
)

type Handler struct {
	useCase ValidateBookingUseCase
	logger  Logger
}

func NewHandler(useCase ValidateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/bookings/validate
// Нарушение правил - это 200 с valid=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req ValidateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/bookings/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		handlers.RespondBadRequest(w, msg)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(serviceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validateBooking.ErrServiceNotConfigured):
			h.logger.Warn("POST /services/{id}/bookings/validate - Service not configured: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, validateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, validateBooking.ErrUnavailable):
			h.logger.Error("POST /services/{id}/bookings/validate - Storage unavailable: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services/{id}/bookings/validate - Failed to validate: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(*result))
}
