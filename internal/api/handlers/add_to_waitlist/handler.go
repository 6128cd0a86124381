package add_to_waitlist

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные записи в лист ожидания"
)

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

// Handle POST /api/v1/services/{serviceId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req AddToWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/waitlist - Invalid request body: %v", err)
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

	id, err := h.service.Add(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, waitlist.ErrUnavailable):
			h.logger.Error("POST /services/{id}/waitlist - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services/{id}/waitlist - Failed to add entry: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/waitlist - Entry added: service_id=%s, entry_id=%d", serviceID, id)
	handlers.RespondJSON(w, http.StatusCreated, AddToWaitlistResponse{ID: id})
}
