package update_service_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "услуга не найдена"
	msgInvalidData        = "некорректные данные конфигурации"
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

// Handle PUT /api/v1/services/{serviceId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req UpdateServiceConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		h.logger.Warn("PUT /services/{id}/config - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	updateReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /services/{id}/config - Invalid operating hours: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.Update(r.Context(), serviceID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id}/config - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id}/config - Invalid data: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, config.ErrUnavailable):
			h.logger.Error("PUT /services/{id}/config - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("PUT /services/{id}/config - Failed to update config: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id}/config - Config updated successfully: service_id=%s", serviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
