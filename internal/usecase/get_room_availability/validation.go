package get_room_availability

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(date, now time.Time, maxDaysAhead int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	maxDate := nowOnly.AddDate(0, 0, maxDaysAhead)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only view %d days ahead", ErrDateTooFarAhead, maxDaysAhead)
	}

	return nil
}
