package update_policy

import (
	"github.com/m04kA/RoomBookingService/internal/service/policy/models"
)

// UpdatePolicyRequest HTTP request model. Все поля опциональны,
// обновляются только переданные значения.
type UpdatePolicyRequest struct {
	OpenHour                *int `json:"openHour,omitempty"`
	CloseHour               *int `json:"closeHour,omitempty"`
	TimeSlotIntervalMinutes *int `json:"timeSlotIntervalMinutes,omitempty"`
	MinDurationMinutes      *int `json:"minDurationMinutes,omitempty"`
	MaxDurationMinutes      *int `json:"maxDurationMinutes,omitempty"`
	MaxActiveBookings       *int `json:"maxActiveBookings,omitempty"`
	MaxConsecutiveBookings  *int `json:"maxConsecutiveBookings,omitempty"`
	CooldownMinutes         *int `json:"cooldownMinutes,omitempty"`
	MinNoticeMinutes        *int `json:"minNoticeMinutes,omitempty"`
	MaxDaysAhead            *int `json:"maxDaysAhead,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса.
// Идентификатор пользователя берется из контекста, а не из тела.
func (r *UpdatePolicyRequest) ToServiceRequest(userID int64) *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		RequesterID:             userID,
		OpenHour:                r.OpenHour,
		CloseHour:               r.CloseHour,
		TimeSlotIntervalMinutes: r.TimeSlotIntervalMinutes,
		MinDurationMinutes:      r.MinDurationMinutes,
		MaxDurationMinutes:      r.MaxDurationMinutes,
		MaxActiveBookings:       r.MaxActiveBookings,
		MaxConsecutiveBookings:  r.MaxConsecutiveBookings,
		CooldownMinutes:         r.CooldownMinutes,
		MinNoticeMinutes:        r.MinNoticeMinutes,
		MaxDaysAhead:            r.MaxDaysAhead,
	}
}
