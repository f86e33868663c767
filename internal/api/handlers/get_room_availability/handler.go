package get_room_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/domain"
	getRoomAvailability "github.com/m04kA/RoomBookingService/internal/usecase/get_room_availability"
)

const (
	msgInvalidRoomID  = "некорректный ID переговорной"
	msgMissingDate    = "дата обязательна"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound   = "переговорная не найдена"
	msgDateInPast     = "дата в прошлом"
	msgDateTooFar     = "дата за пределами горизонта бронирования"
	msgInvalidRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetRoomAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetRoomAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidRoomID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(roomID, dateStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getRoomAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, domain.CodeRoomNotFound, msgRoomNotFound)

		case errors.Is(err, getRoomAvailability.ErrInvalidDate):
			h.logger.Warn("GET /rooms/{id}/availability - Date in the past: room_id=%d, date=%s", roomID, dateStr)
			handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgDateInPast)

		case errors.Is(err, getRoomAvailability.ErrDateTooFarAhead):
			h.logger.Warn("GET /rooms/{id}/availability - Date too far ahead: room_id=%d, date=%s", roomID, dateStr)
			handlers.RespondBadRequest(w, domain.CodeTooFarAhead, msgDateTooFar)

		case errors.Is(err, getRoomAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidRequest)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to get availability: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /rooms/{id}/availability - Availability retrieved successfully: room_id=%d, slots_count=%d",
		roomID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
