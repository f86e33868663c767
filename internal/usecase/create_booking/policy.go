package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

// evaluatePolicy проверяет запрошенный интервал по действующей политике.
// Правила применяются сверху вниз, первое нарушение прерывает проверку.
// Функция чистая: снимок активных бронирований и now приходят снаружи,
// хранилище отсюда не вызывается.
func evaluatePolicy(interval domain.Interval, now time.Time, active []*domain.Booking, cfg *domain.PolicyConfig) error {
	if err := checkOperatingHours(interval, cfg); err != nil {
		return err
	}

	if err := checkDuration(interval, cfg); err != nil {
		return err
	}

	if err := checkNotice(interval, now, cfg); err != nil {
		return err
	}

	if err := checkHorizon(interval, now, cfg); err != nil {
		return err
	}

	if err := checkActiveQuota(active, cfg); err != nil {
		return err
	}

	if err := checkConsecutive(interval, active, cfg); err != nil {
		return err
	}

	return checkCooldown(interval, active, cfg)
}

// checkOperatingHours проверяет, что интервал корректен и целиком лежит
// в рабочем окне одного календарного дня (UTC).
func checkOperatingHours(interval domain.Interval, cfg *domain.PolicyConfig) error {
	if !interval.End.After(interval.Start) {
		return fmt.Errorf("%w: end time must be after start time", ErrInvalidTimeRange)
	}

	startMin := minuteOfDay(interval.Start)

	endMin, sameDay := minuteOfDayEnd(interval)
	if !sameDay {
		return fmt.Errorf("%w: booking must start and end on the same day", ErrOutsideOperatingHours)
	}

	openMin, closeMin := cfg.OperatingWindowMinutes()
	if startMin < openMin || endMin > closeMin {
		return fmt.Errorf("%w: booking must be within %02d:00-%02d:00", ErrOutsideOperatingHours, cfg.OpenHour, cfg.CloseHour)
	}

	return nil
}

func checkDuration(interval domain.Interval, cfg *domain.PolicyConfig) error {
	minutes := interval.Minutes()

	if minutes < cfg.MinDurationMinutes {
		return fmt.Errorf("%w: booking must be at least %d minutes", ErrDurationTooShort, cfg.MinDurationMinutes)
	}

	if minutes > cfg.MaxDurationMinutes {
		return fmt.Errorf("%w: booking must be at most %d minutes", ErrDurationTooLong, cfg.MaxDurationMinutes)
	}

	return nil
}

func checkNotice(interval domain.Interval, now time.Time, cfg *domain.PolicyConfig) error {
	notice := time.Duration(cfg.MinNoticeMinutes) * time.Minute

	// Ровно minNoticeMinutes до начала — допустимо
	if interval.Start.Sub(now) < notice {
		return fmt.Errorf("%w: booking must start at least %d minutes from now", ErrInsufficientNotice, cfg.MinNoticeMinutes)
	}

	return nil
}

func checkHorizon(interval domain.Interval, now time.Time, cfg *domain.PolicyConfig) error {
	horizon := time.Duration(cfg.MaxDaysAhead) * 24 * time.Hour

	// Ровно maxDaysAhead дней до начала — допустимо
	if interval.Start.Sub(now) > horizon {
		return fmt.Errorf("%w: booking must start within %d days", ErrTooFarAhead, cfg.MaxDaysAhead)
	}

	return nil
}

func checkActiveQuota(active []*domain.Booking, cfg *domain.PolicyConfig) error {
	if len(active) >= cfg.MaxActiveBookings {
		return fmt.Errorf("%w: limit is %d active bookings", ErrMaxActiveBookingsExceeded, cfg.MaxActiveBookings)
	}

	return nil
}

// checkConsecutive считает существующие бронирования, образующие с запрошенным
// интервалом непрерывную цепочку без зазоров. Комната не учитывается: подряд
// идущие бронирования в разных переговорных тоже образуют цепочку.
func checkConsecutive(interval domain.Interval, active []*domain.Booking, cfg *domain.PolicyConfig) error {
	if !cfg.HasConsecutiveLimit() {
		return nil
	}

	chained := countChained(interval, active)
	if chained >= *cfg.MaxConsecutiveBookings {
		return fmt.Errorf("%w: limit is %d consecutive bookings", ErrMaxConsecutiveExceeded, *cfg.MaxConsecutiveBookings)
	}

	return nil
}

// countChained идет от границ интервала в обе стороны, пока стык
// "конец == начало" продолжает цепочку.
func countChained(interval domain.Interval, active []*domain.Booking) int {
	count := 0

	cursor := interval.Start
	for {
		prev := findEndingAt(active, cursor)
		if prev == nil {
			break
		}
		count++
		cursor = prev.StartTime
	}

	cursor = interval.End
	for {
		next := findStartingAt(active, cursor)
		if next == nil {
			break
		}
		count++
		cursor = next.EndTime
	}

	return count
}

func findEndingAt(active []*domain.Booking, at time.Time) *domain.Booking {
	for _, b := range active {
		if b.EndTime.Equal(at) {
			return b
		}
	}
	return nil
}

func findStartingAt(active []*domain.Booking, at time.Time) *domain.Booking {
	for _, b := range active {
		if b.StartTime.Equal(at) {
			return b
		}
	}
	return nil
}

// checkCooldown проверяет паузу между бронированиями пользователя.
// Зазор ровно в cooldownMinutes допустим, стык без зазора — нет.
func checkCooldown(interval domain.Interval, active []*domain.Booking, cfg *domain.PolicyConfig) error {
	if !cfg.HasCooldown() {
		return nil
	}

	cooldown := time.Duration(*cfg.CooldownMinutes) * time.Minute

	for _, b := range active {
		gapBefore := interval.Start.Sub(b.EndTime)
		if gapBefore >= 0 && gapBefore < cooldown {
			return fmt.Errorf("%w: previous booking ends %d minutes before start, need %d", ErrCooldownViolation, int(gapBefore/time.Minute), *cfg.CooldownMinutes)
		}

		gapAfter := b.StartTime.Sub(interval.End)
		if gapAfter >= 0 && gapAfter < cooldown {
			return fmt.Errorf("%w: next booking starts %d minutes after end, need %d", ErrCooldownViolation, int(gapAfter/time.Minute), *cfg.CooldownMinutes)
		}
	}

	return nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*domain.MinutesPerHour + t.Minute()
}

// minuteOfDayEnd возвращает минуту окончания в пределах дня начала.
// Окончание ровно в полночь следующего дня трактуется как 1440-я минута,
// чтобы closeHour=24 разрешал бронирования до конца суток.
func minuteOfDayEnd(interval domain.Interval) (int, bool) {
	sy, sm, sd := interval.Start.Date()
	ey, em, ed := interval.End.Date()

	if sy == ey && sm == em && sd == ed {
		return minuteOfDay(interval.End), true
	}

	nextMidnight := time.Date(sy, sm, sd, 0, 0, 0, 0, interval.Start.Location()).AddDate(0, 0, 1)
	if interval.End.Equal(nextMidnight) {
		return domain.MinutesPerDay, true
	}

	return 0, false
}
