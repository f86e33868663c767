package policy

import (
	"github.com/m04kA/RoomBookingService/internal/domain"
)

// validatePolicyConfig проверяет конфигурацию по таблице правил.
// Правила проверяются сверху вниз, первое нарушение выигрывает —
// результат детерминирован для любого входа.
func validatePolicyConfig(cfg *domain.PolicyConfig) error {
	if cfg.OpenHour < domain.MinOperatingHour || cfg.OpenHour >= domain.MaxOperatingHour {
		return ErrInvalidHours
	}
	if cfg.CloseHour <= domain.MinOperatingHour || cfg.CloseHour > domain.MaxOperatingHour {
		return ErrInvalidHours
	}
	if cfg.OpenHour >= cfg.CloseHour {
		return ErrInvalidHours
	}
	if cfg.TimeSlotIntervalMinutes <= 0 {
		return ErrInvalidTimeSlotInterval
	}
	if cfg.MinDurationMinutes <= 0 {
		return ErrInvalidMinDuration
	}
	if cfg.MaxDurationMinutes <= 0 {
		return ErrInvalidMaxDuration
	}
	if cfg.MinDurationMinutes > cfg.MaxDurationMinutes {
		return ErrInvalidDurationRange
	}
	if cfg.MaxActiveBookings <= 0 {
		return ErrInvalidMaxActiveBookings
	}
	if cfg.MaxConsecutiveBookings != nil && *cfg.MaxConsecutiveBookings <= 0 {
		return ErrInvalidMaxConsecutive
	}
	if cfg.CooldownMinutes != nil && *cfg.CooldownMinutes < 0 {
		return ErrInvalidCooldown
	}
	if cfg.MinNoticeMinutes < 0 {
		return ErrInvalidMinNotice
	}
	if cfg.MaxDaysAhead <= 0 {
		return ErrInvalidMaxDaysAhead
	}
	return nil
}
