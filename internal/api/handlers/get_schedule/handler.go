package get_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config"
)

const msgNotFound = "расписание услуги не найдено"

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	result, err := h.service.GetTemplate(r.Context(), serviceID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrTemplateNotFound):
			h.logger.Warn("GET /services/{id}/schedule - Template not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, config.ErrUnavailable):
			h.logger.Error("GET /services/{id}/schedule - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /services/{id}/schedule - Failed to get template: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
