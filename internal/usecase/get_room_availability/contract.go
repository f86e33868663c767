package get_room_availability

import (
	"context"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
)

// BookingRepository - интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedByRoomsBetween(ctx context.Context, roomIDs []int64, from, to time.Time) ([]*domain.Booking, error)
}

// MaintenanceRepository - интерфейс репозитория технических блокировок
type MaintenanceRepository interface {
	ListOverlapping(ctx context.Context, roomID int64, interval domain.Interval) ([]*domain.MaintenanceBlock, error)
}

// PolicyRepository - интерфейс репозитория политики бронирования
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.PolicyConfig, error)
}

// RoomServiceClient - интерфейс клиента RoomService
type RoomServiceClient interface {
	GetRoom(ctx context.Context, roomID int64) (*roomservice.Room, error)
}

// TimeProvider - интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// RealTimeProvider - стандартная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
