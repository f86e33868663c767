package get_room_bookings

import (
	"context"

	"github.com/m04kA/RoomBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetRoomBookings(ctx context.Context, req *models.GetRoomBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
