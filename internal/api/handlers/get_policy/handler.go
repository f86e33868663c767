package get_policy

import (
	"net/http"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/policy
// Публичный endpoint - без авторизации. Пока администратор не сохранил
// собственную политику, отдаются значения по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("GET /policy - Failed to get policy: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /policy - Policy retrieved successfully")
	handlers.RespondJSON(w, http.StatusOK, result)
}
