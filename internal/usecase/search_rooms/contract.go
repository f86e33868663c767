package search_rooms

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
	ListByRoomsBetween(ctx context.Context, roomIDs []int64, from, to time.Time) ([]*domain.MaintenanceBlock, error)
}

// PolicyRepository - интерфейс репозитория политики бронирования
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.PolicyConfig, error)
}

// RoomServiceClient - интерфейс клиента RoomService
type RoomServiceClient interface {
	ListRooms(ctx context.Context, filter roomservice.RoomsFilter) ([]*roomservice.Room, error)
}

// Metrics - интерфейс для сбора бизнес-метрик
type Metrics interface {
	IncRoomSearch()
}

// Logger - интерфейс для логирования
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
