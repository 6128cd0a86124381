package promote_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/services/{serviceId}/waitlist/promote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req PromoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/waitlist/promote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		handlers.RespondBadRequest(w, msg)
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	at, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Promote(r.Context(), serviceID, date, at)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrUnavailable):
			h.logger.Error("POST /services/{id}/waitlist/promote - Storage unavailable: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services/{id}/waitlist/promote - Failed to promote: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := FromServiceResult(result)
	h.logger.Info("POST /services/{id}/waitlist/promote - service_id=%s, promoted=%t", serviceID, resp.Promoted)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
