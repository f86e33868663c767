package search_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/domain"
	searchRooms "github.com/m04kA/RoomBookingService/internal/usecase/search_rooms"
)

const (
	msgMissingWindow = "параметры from и to обязательны"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase SearchRoomsUseCase
	logger  Logger
}

func NewHandler(useCase SearchRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/search
// Query params: from, to (required, RFC 3339), minCapacity, capabilities, sort
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromStr := query.Get("from")
	toStr := query.Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /rooms/search - Missing from/to window")
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgMissingWindow)
		return
	}

	// Формируем запрос к use case (с парсингом параметров)
	useCaseReq, err := ToUseCaseRequest(fromStr, toStr, query.Get("minCapacity"), query.Get("capabilities"), query.Get("sort"))
	if err != nil {
		h.logger.Warn("GET /rooms/search - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, searchRooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidParams)

		default:
			h.logger.Error("GET /rooms/search - Failed to search rooms: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /rooms/search - Rooms searched successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, response)
}
