package get_room_availability

import (
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/pkg/types"
)

// operatingWindow возвращает рабочее окно на указанную дату.
// closeHour=24 нормализуется стандартной библиотекой в полночь следующего дня.
func operatingWindow(date time.Time, cfg *domain.PolicyConfig) domain.Interval {
	y, m, d := date.Date()
	start := time.Date(y, m, d, cfg.OpenHour, 0, 0, 0, time.UTC)
	end := time.Date(y, m, d, cfg.CloseHour, 0, 0, 0, time.UTC)
	return domain.Interval{Start: start, End: end}
}

// buildDayGrid нарезает рабочее окно на полные слоты и помечает занятость.
// Неполный хвост окна в сетку не попадает.
func buildDayGrid(window domain.Interval, slotMinutes int, busy []domain.Interval) []domain.TimeSlot {
	width := time.Duration(slotMinutes) * time.Minute

	slots := make([]domain.TimeSlot, 0)
	for start := window.Start; !start.Add(width).After(window.End); start = start.Add(width) {
		slot := domain.Interval{Start: start, End: start.Add(width)}

		slots = append(slots, domain.TimeSlot{
			StartTime:       types.NewTimeString(slot.Start),
			EndTime:         types.NewTimeString(slot.End),
			DurationMinutes: slotMinutes,
			Available:       !overlapsAny(slot, busy),
		})
	}

	return slots
}

func overlapsAny(slot domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}
