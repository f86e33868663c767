package create_booking

import (
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Notes     *string
}

// Response модель созданного бронирования
type Response struct {
	ID        int64
	UserID    int64
	RoomID    int64
	RoomName  string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func buildResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:        booking.ID,
		UserID:    booking.UserID,
		RoomID:    booking.RoomID,
		RoomName:  booking.RoomName,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Status:    string(booking.Status),
		Notes:     booking.Notes,
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}
}
