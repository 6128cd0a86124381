package generate_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/config/models"
	generateSchedule "github.com/m04kA/SMC-SchedulingService/internal/usecase/generate_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotConfigured      = "услуга не настроена"
	msgInvalidConfig      = "конфигурация услуги не позволяет построить расписание"
)

type Handler struct {
	useCase GenerateScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GenerateScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/schedule/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	var req GenerateScheduleRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /services/{id}/schedule/generate - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	if msg, ok := handlers.Validate(&req); !ok {
		h.logger.Warn("POST /services/{id}/schedule/generate - Validation failed: %s", msg)
		handlers.RespondBadRequest(w, msg)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(serviceID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSchedule.ErrServiceNotConfigured):
			h.logger.Warn("POST /services/{id}/schedule/generate - Service not configured: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotConfigured)

		case errors.Is(err, generateSchedule.ErrInvalidInput),
			errors.Is(err, generateSchedule.ErrInvalidDuration),
			errors.Is(err, generateSchedule.ErrInvalidGap):
			h.logger.Warn("POST /services/{id}/schedule/generate - Invalid config: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, generateSchedule.ErrUnavailable):
			h.logger.Error("POST /services/{id}/schedule/generate - Storage unavailable: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("POST /services/{id}/schedule/generate - Failed to generate: service_id=%s, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/schedule/generate - Schedule generated: service_id=%s, slots=%d",
		serviceID, result.Template.TotalSlots())
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainTemplate(result.Template))
}
