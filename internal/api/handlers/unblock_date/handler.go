package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound    = "дата не заблокирована"
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

// Handle DELETE /api/v1/services/{serviceId}/blocks/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]

	date, err := domain.ParseDate(vars["date"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	if err := h.service.Unblock(r.Context(), serviceID, date); err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, blocks.ErrUnavailable):
			h.logger.Error("DELETE /services/{id}/blocks/{date} - Storage unavailable: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("DELETE /services/{id}/blocks/{date} - Failed to unblock: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id}/blocks/{date} - Date unblocked: service_id=%s, date=%s", serviceID, vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
