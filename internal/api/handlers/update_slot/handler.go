package update_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный день недели или время слота"
	msgNothingToUpdate    = "нужно указать enabled или staffId"
	msgTemplateNotFound   = "расписание услуги не найдено"
	msgSlotNotFound       = "слот не найден"
)

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

// Handle PATCH /api/v1/services/{serviceId}/schedule/{weekday}/slots/{time}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID := vars["serviceId"]

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /services/{id}/schedule/{day}/slots/{time} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		handlers.RespondBadRequest(w, msg)
		return
	}

	serviceReq, err := req.ToServiceRequest(serviceID, vars["weekday"], vars["time"])
	if err != nil {
		h.logger.Warn("PATCH /services/{id}/schedule/{day}/slots/{time} - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.UpdateSlot(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNothingToUpdate)

		case errors.Is(err, config.ErrTemplateNotFound):
			h.logger.Warn("PATCH /services/{id}/schedule/{day}/slots/{time} - Template not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, config.ErrSlotNotFound):
			h.logger.Warn("PATCH /services/{id}/schedule/{day}/slots/{time} - Slot not found: service_id=%s, day=%s, time=%s",
				serviceID, vars["weekday"], vars["time"])
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, config.ErrUnavailable):
			h.logger.Error("PATCH /services/{id}/schedule/{day}/slots/{time} - Storage unavailable: error=%v", err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("PATCH /services/{id}/schedule/{day}/slots/{time} - Failed to update slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /services/{id}/schedule/{day}/slots/{time} - Slot updated: service_id=%s, day=%s, time=%s",
		serviceID, vars["weekday"], vars["time"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
