package list_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/waitlist
// Query params: date (required), time, status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	query := ParseQuery(r.URL.Query())
	if msg, ok := handlers.Validate(&query); !ok {
		handlers.RespondBadRequest(w, msg)
		return
	}

	req, err := query.ToServiceRequest(serviceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	entries, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, waitlist.ErrUnavailable):
			h.logger.Error("GET /services/{id}/waitlist - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /services/{id}/waitlist - Failed to list entries: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainList(entries))
}
