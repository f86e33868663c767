package create_booking

import (
	"fmt"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

// validateRequest проверяет базовую корректность входных данных.
// Правила политики (рабочие часы, длительность и т.д.) проверяются отдельно.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Границы бронирования выравниваются по минутам, секунды не принимаются
	if req.StartTime.Second() != 0 || req.StartTime.Nanosecond() != 0 {
		return fmt.Errorf("%w: startTime must be aligned to a whole minute", ErrInvalidInput)
	}

	if req.EndTime.Second() != 0 || req.EndTime.Nanosecond() != 0 {
		return fmt.Errorf("%w: endTime must be aligned to a whole minute", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
