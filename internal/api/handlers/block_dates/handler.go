package block_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные блокировки"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req BlockDatesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		handlers.RespondBadRequest(w, msg)
		return
	}

	serviceReq, err := req.ToServiceRequest(serviceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	if err := h.service.BlockDates(r.Context(), serviceReq); err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, blocks.ErrUnavailable):
			h.logger.Error("POST /services/{id}/blocks - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services/{id}/blocks - Failed to block dates: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/blocks - Dates blocked: service_id=%s, count=%d", serviceID, len(req.Dates))
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
