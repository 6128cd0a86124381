package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные услуги"
	msgAlreadyExists      = "услуга с таким ID уже существует"
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

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := handlers.Validate(&req); !ok {
		h.logger.Warn("POST /services - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /services - Invalid operating hours: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid data: service_id=%s, error=%v", req.ID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, config.ErrServiceAlreadyExists):
			h.logger.Warn("POST /services - Service already exists: service_id=%s", req.ID)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, config.ErrUnavailable):
			h.logger.Error("POST /services - Storage unavailable: service_id=%s, error=%v", req.ID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services - Failed to create service: service_id=%s, error=%v", req.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
