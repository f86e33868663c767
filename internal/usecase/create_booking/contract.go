package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
)

// BookingRepository - интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Booking, error)
	ListOverlapping(ctx context.Context, roomID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error)
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

// TransactionManager - интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider - интерфейс источника текущего времени.
// Все проверки политики считаются от одного значения now за вызов.
type TimeProvider interface {
	Now() time.Time
}

// Metrics - интерфейс для сбора бизнес-метрик
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
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
