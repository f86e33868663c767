package get_room_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/RoomBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	roomID int64,
	userID int64,
	fromStr string,
	toStr string,
	includeInactiveStr string,
) (*models.GetRoomBookingsRequest, error) {
	req := &models.GetRoomBookingsRequest{
		RoomID:          roomID,
		RequesterID:     userID,
		IncludeInactive: false, // По умолчанию только подтвержденные
	}

	// Парсим from если указан
	if fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from value: %w", err)
		}
		req.From = &from
	}

	// Парсим to если указан
	if toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to value: %w", err)
		}
		req.To = &to
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
