package list_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidRange  = "некорректный период, допускается не более 92 дней"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/bookings
// Query params: from, to (required, YYYY-MM-DD), status, patientId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	query := ParseQuery(r.URL.Query())
	if msg, ok := handlers.Validate(&query); !ok {
		h.logger.Warn("GET /services/{id}/bookings - Invalid query: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	req, err := query.ToServiceRequest(serviceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrUnavailable):
			h.logger.Error("GET /services/{id}/bookings - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /services/{id}/bookings - Failed to list bookings: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{id}/bookings - Bookings retrieved: service_id=%s, count=%d",
		serviceID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
