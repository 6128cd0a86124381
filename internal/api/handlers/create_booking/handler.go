package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotConfigured      = "услуга не настроена"
	msgConflict           = "слот изменился во время бронирования, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		h.logger.Warn("POST /services/{id}/bookings - Validation failed: %s", msg)
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
		case errors.Is(err, createBooking.ErrServiceNotConfigured):
			h.logger.Warn("POST /services/{id}/bookings - Service not configured: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /services/{id}/bookings - Concurrent conflict: service_id=%s, patient_id=%s",
				serviceID, req.PatientID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createBooking.ErrUnavailable):
			h.logger.Error("POST /services/{id}/bookings - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services/{id}/bookings - Failed to create booking: service_id=%s, patient_id=%s, error=%v",
				serviceID, req.PatientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Validation.Valid {
		h.logger.Info("POST /services/{id}/bookings - Booking rejected: service_id=%s, patient_id=%s, reason=%s",
			serviceID, req.PatientID, result.Validation.Reason)
		handlers.RespondJSON(w, http.StatusConflict, RejectedResponse{Valid: false, Reason: result.Validation.Reason})
		return
	}

	h.logger.Info("POST /services/{id}/bookings - Booking created successfully: booking_id=%d, service_id=%s, patient_id=%s",
		result.Booking.ID, serviceID, req.PatientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
