package policy

import (
	"context"

	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/internal/integrations/userservice"
)

// PolicyRepository интерфейс репозитория политики бронирования
type PolicyRepository interface {
	Get(ctx context.Context) (*domain.PolicyConfig, error)
	Upsert(ctx context.Context, cfg *domain.PolicyConfig) (*domain.PolicyConfig, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
