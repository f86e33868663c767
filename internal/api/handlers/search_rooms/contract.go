package search_rooms

import (
	"context"

	searchRooms "github.com/m04kA/RoomBookingService/internal/usecase/search_rooms"
)

type SearchRoomsUseCase interface {
	Execute(ctx context.Context, req *searchRooms.Request) (*searchRooms.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
