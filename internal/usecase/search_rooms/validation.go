package search_rooms

import (
	"fmt"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.From.IsZero() {
		return fmt.Errorf("%w: from is required", ErrInvalidInput)
	}

	if req.To.IsZero() {
		return fmt.Errorf("%w: to is required", ErrInvalidInput)
	}

	if !req.To.After(req.From) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}

	if req.MinCapacity != nil && *req.MinCapacity <= 0 {
		return fmt.Errorf("%w: minCapacity must be positive", ErrInvalidInput)
	}

	if req.Sort != nil {
		switch *req.Sort {
		case SortByID, SortByName, SortByCapacity:
		default:
			return fmt.Errorf("%w: sort must be one of id, name, capacity", ErrInvalidInput)
		}
	}

	return nil
}
