package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/api/middleware"
	"github.com/m04kA/RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidTimeFormat      = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgBookingConflict        = "интервал пересекается с существующим бронированием"
	msgRoomNotFound           = "переговорная не найдена"
	msgRoomUnavailable        = "переговорная недоступна для бронирования"
	msgInvalidTimeRange       = "время окончания должно быть позже времени начала"
	msgOutsideOperatingHours  = "бронирование выходит за рамки рабочих часов"
	msgDurationTooShort       = "длительность меньше минимально допустимой"
	msgDurationTooLong        = "длительность больше максимально допустимой"
	msgInsufficientNotice     = "до начала бронирования остается меньше минимального уведомления"
	msgTooFarAhead            = "бронирование слишком далеко в будущем"
	msgMaxActiveExceeded      = "превышен лимит активных бронирований"
	msgMaxConsecutiveExceeded = "превышен лимит подряд идущих бронирований"
	msgCooldownViolation      = "не выдержана пауза между бронированиями"
	msgInvalidInput           = "некорректные параметры запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, domain.CodeAccessDenied, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidTimeFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Booking conflict: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondError(w, http.StatusConflict, domain.CodeBookingConflict, msgBookingConflict)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, domain.CodeRoomNotFound, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrRoomUnavailable):
			h.logger.Warn("POST /bookings - Room unavailable: room_id=%d", req.RoomID)
			handlers.RespondError(w, http.StatusConflict, domain.CodeRoomUnavailable, msgRoomUnavailable)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeInvalidTimeRange, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Outside operating hours: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeOutsideOperatingHours, msgOutsideOperatingHours)

		case errors.Is(err, createBooking.ErrDurationTooShort):
			h.logger.Warn("POST /bookings - Duration too short: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeDurationTooShort, msgDurationTooShort)

		case errors.Is(err, createBooking.ErrDurationTooLong):
			h.logger.Warn("POST /bookings - Duration too long: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeDurationTooLong, msgDurationTooLong)

		case errors.Is(err, createBooking.ErrInsufficientNotice):
			h.logger.Warn("POST /bookings - Insufficient notice: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeInsufficientNotice, msgInsufficientNotice)

		case errors.Is(err, createBooking.ErrTooFarAhead):
			h.logger.Warn("POST /bookings - Too far ahead: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeTooFarAhead, msgTooFarAhead)

		case errors.Is(err, createBooking.ErrMaxActiveBookingsExceeded):
			h.logger.Warn("POST /bookings - Max active bookings exceeded: user_id=%d", userID)
			handlers.RespondBadRequest(w, domain.CodeMaxActiveBookingsExceeded, msgMaxActiveExceeded)

		case errors.Is(err, createBooking.ErrMaxConsecutiveExceeded):
			h.logger.Warn("POST /bookings - Max consecutive bookings exceeded: user_id=%d", userID)
			handlers.RespondBadRequest(w, domain.CodeMaxConsecutiveExceeded, msgMaxConsecutiveExceeded)

		case errors.Is(err, createBooking.ErrCooldownViolation):
			h.logger.Warn("POST /bookings - Cooldown violation: user_id=%d, room_id=%d", userID, req.RoomID)
			handlers.RespondBadRequest(w, domain.CodeCooldownViolation, msgCooldownViolation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, room_id=%d, error=%v",
				userID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, room_id=%d",
		result.ID, userID, req.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
