package list_blocks

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks"
	"github.com/m04kA/SMC-SchedulingService/internal/service/blocks/models"
)

const msgInvalidRange = "некорректный период, ожидаются from и to в формате YYYY-MM-DD"

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

// Handle GET /api/v1/services/{serviceId}/blocks
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	from, errFrom := domain.ParseDate(r.URL.Query().Get("from"))
	to, errTo := domain.ParseDate(r.URL.Query().Get("to"))
	if errFrom != nil || errTo != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.List(r.Context(), serviceID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, blocks.ErrUnavailable):
			h.logger.Error("GET /services/{id}/blocks - Storage unavailable: service_id=%s, error=%v", serviceID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /services/{id}/blocks - Failed to list blocks: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBlocks(result))
}
