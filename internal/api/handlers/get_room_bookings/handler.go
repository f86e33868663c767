package get_room_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/api/middleware"
	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/internal/service/bookings"
)

const (
	msgInvalidRoomID = "некорректный ID переговорной"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/bookings
// Query params: from, to (RFC 3339), includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	vars := mux.Vars(r)
	roomIDStr := vars["roomId"]

	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/bookings - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidRoomID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /rooms/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, domain.CodeAccessDenied, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(roomID, userID, fromStr, toStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidParams)
		return
	}

	// Получаем бронирования переговорной (сервис сам проверит права администратора)
	result, err := h.service.GetRoomBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /rooms/{id}/bookings - Access denied: room_id=%d, user_id=%d",
				roomID, userID)
			handlers.RespondForbidden(w, domain.CodeAccessDenied, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/bookings - Invalid period: room_id=%d", roomID)
			handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidParams)

		default:
			h.logger.Error("GET /rooms/{id}/bookings - Failed to get bookings: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/bookings - Bookings retrieved successfully: room_id=%d, count=%d",
		roomID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
