package models

import (
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на обновление политики бронирования.
// Все поля опциональны - обновляются только переданные значения.
// Сброс уже установленных MaxConsecutiveBookings/CooldownMinutes
// частичным обновлением не поддерживается.
type UpdatePolicyRequest struct {
	RequesterID             int64 `json:"requesterId"`
	OpenHour                *int  `json:"openHour,omitempty"`
	CloseHour               *int  `json:"closeHour,omitempty"`
	TimeSlotIntervalMinutes *int  `json:"timeSlotIntervalMinutes,omitempty"`
	MinDurationMinutes      *int  `json:"minDurationMinutes,omitempty"`
	MaxDurationMinutes      *int  `json:"maxDurationMinutes,omitempty"`
	MaxActiveBookings       *int  `json:"maxActiveBookings,omitempty"`
	MaxConsecutiveBookings  *int  `json:"maxConsecutiveBookings,omitempty"`
	CooldownMinutes         *int  `json:"cooldownMinutes,omitempty"`
	MinNoticeMinutes        *int  `json:"minNoticeMinutes,omitempty"`
	MaxDaysAhead            *int  `json:"maxDaysAhead,omitempty"`
}

// ApplyToConfig применяет переданные поля к конфигурации
func (r *UpdatePolicyRequest) ApplyToConfig(cfg *domain.PolicyConfig) {
	if r.OpenHour != nil {
		cfg.OpenHour = *r.OpenHour
	}
	if r.CloseHour != nil {
		cfg.CloseHour = *r.CloseHour
	}
	if r.TimeSlotIntervalMinutes != nil {
		cfg.TimeSlotIntervalMinutes = *r.TimeSlotIntervalMinutes
	}
	if r.MinDurationMinutes != nil {
		cfg.MinDurationMinutes = *r.MinDurationMinutes
	}
	if r.MaxDurationMinutes != nil {
		cfg.MaxDurationMinutes = *r.MaxDurationMinutes
	}
	if r.MaxActiveBookings != nil {
		cfg.MaxActiveBookings = *r.MaxActiveBookings
	}
	if r.MaxConsecutiveBookings != nil {
		value := *r.MaxConsecutiveBookings
		cfg.MaxConsecutiveBookings = &value
	}
	if r.CooldownMinutes != nil {
		value := *r.CooldownMinutes
		cfg.CooldownMinutes = &value
	}
	if r.MinNoticeMinutes != nil {
		cfg.MinNoticeMinutes = *r.MinNoticeMinutes
	}
	if r.MaxDaysAhead != nil {
		cfg.MaxDaysAhead = *r.MaxDaysAhead
	}
}

// IsEmpty возвращает true, если запрос не содержит ни одного поля
func (r *UpdatePolicyRequest) IsEmpty() bool {
	return r.OpenHour == nil &&
		r.CloseHour == nil &&
		r.TimeSlotIntervalMinutes == nil &&
		r.MinDurationMinutes == nil &&
		r.MaxDurationMinutes == nil &&
		r.MaxActiveBookings == nil &&
		r.MaxConsecutiveBookings == nil &&
		r.CooldownMinutes == nil &&
		r.MinNoticeMinutes == nil &&
		r.MaxDaysAhead == nil
}

// Response модели

// PolicyResponse ответ с действующей политикой бронирования
type PolicyResponse struct {
	OpenHour                int       `json:"openHour"`
	CloseHour               int       `json:"closeHour"`
	TimeSlotIntervalMinutes int       `json:"timeSlotIntervalMinutes"`
	MinDurationMinutes      int       `json:"minDurationMinutes"`
	MaxDurationMinutes      int       `json:"maxDurationMinutes"`
	MaxActiveBookings       int       `json:"maxActiveBookings"`
	MaxConsecutiveBookings  *int      `json:"maxConsecutiveBookings,omitempty"`
	CooldownMinutes         *int      `json:"cooldownMinutes,omitempty"`
	MinNoticeMinutes        int       `json:"minNoticeMinutes"`
	MaxDaysAhead            int       `json:"maxDaysAhead"`
	UpdatedAt               time.Time `json:"updatedAt"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(c *domain.PolicyConfig) *PolicyResponse {
	if c == nil {
		return nil
	}

	return &PolicyResponse{
		OpenHour:                c.OpenHour,
		CloseHour:               c.CloseHour,
		TimeSlotIntervalMinutes: c.TimeSlotIntervalMinutes,
		MinDurationMinutes:      c.MinDurationMinutes,
		MaxDurationMinutes:      c.MaxDurationMinutes,
		MaxActiveBookings:       c.MaxActiveBookings,
		MaxConsecutiveBookings:  c.MaxConsecutiveBookings,
		CooldownMinutes:         c.CooldownMinutes,
		MinNoticeMinutes:        c.MinNoticeMinutes,
		MaxDaysAhead:            c.MaxDaysAhead,
		UpdatedAt:               c.UpdatedAt,
	}
}
