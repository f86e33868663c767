package update_policy

import (
	"errors"
	"net/http"

	"github.com/m04kA/RoomBookingService/internal/api/handlers"
	"github.com/m04kA/RoomBookingService/internal/api/middleware"
	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/internal/service/policy"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgMissingUser  = "отсутствует ID пользователя"
	msgAdminOnly    = "изменение политики доступно только администратору"
	msgEmptyRequest = "запрос не содержит ни одного поля"
)

// Соответствие ошибок валидации политики стабильным кодам API.
// Порядок повторяет порядок проверок в сервисе.
var validationCodes = []struct {
	err     error
	code    string
	message string
}{
	{policy.ErrInvalidHours, domain.CodeInvalidHours, "некорректные часы работы"},
	{policy.ErrInvalidTimeSlotInterval, domain.CodeInvalidTimeSlotInterval, "некорректная ширина слота"},
	{policy.ErrInvalidMinDuration, domain.CodeInvalidMinDuration, "некорректная минимальная длительность"},
	{policy.ErrInvalidMaxDuration, domain.CodeInvalidMaxDuration, "некорректная максимальная длительность"},
	{policy.ErrInvalidDurationRange, domain.CodeInvalidDurationRange, "минимальная длительность больше максимальной"},
	{policy.ErrInvalidMaxActiveBookings, domain.CodeInvalidMaxActiveBookings, "некорректный лимит активных бронирований"},
	{policy.ErrInvalidMaxConsecutive, domain.CodeInvalidMaxConsecutive, "некорректный лимит последовательных бронирований"},
	{policy.ErrInvalidCooldown, domain.CodeInvalidCooldown, "некорректный кулдаун"},
	{policy.ErrInvalidMinNotice, domain.CodeInvalidMinNotice, "некорректное минимальное уведомление"},
	{policy.ErrInvalidMaxDaysAhead, domain.CodeInvalidMaxDaysAhead, "некорректный горизонт бронирования"},
}

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

// Handle PUT /api/v1/policy
// Частичное обновление: применяются только переданные поля, затем
// эффективная конфигурация валидируется целиком. Только для администратора.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /policy - Missing user ID")
		handlers.RespondUnauthorized(w, domain.CodeAccessDenied, msgMissingUser)
		return
	}

	var req UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /policy - Invalid request body: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgInvalidBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		for _, vc := range validationCodes {
			if errors.Is(err, vc.err) {
				h.logger.Warn("PUT /policy - Validation failed: user_id=%d, code=%s, error=%v",
					userID, vc.code, err)
				handlers.RespondBadRequest(w, vc.code, vc.message)
				return
			}
		}

		switch {
		case errors.Is(err, policy.ErrAccessDenied):
			h.logger.Warn("PUT /policy - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, domain.CodeAccessDenied, msgAdminOnly)

		case errors.Is(err, policy.ErrInvalidInput):
			h.logger.Warn("PUT /policy - Empty update request: user_id=%d", userID)
			handlers.RespondBadRequest(w, domain.CodeInvalidInput, msgEmptyRequest)

		default:
			h.logger.Error("PUT /policy - Failed to update policy: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /policy - Policy updated successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
