package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	roomClient "github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	maintenanceRepo MaintenanceRepository
	policyRepo      PolicyRepository
	roomClient      RoomServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	maintenanceRepo MaintenanceRepository,
	policyRepo PolicyRepository,
	roomClient RoomServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		maintenanceRepo: maintenanceRepo,
		policyRepo:      policyRepo,
		roomClient:      roomClient,
		txManager:       txManager,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в сериализуемой транзакции:
// из двух конкурирующих запросов на пересекающиеся интервалы одной комнаты
// ровно один завершается успехом, второй получает ErrBookingConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, room=%d, start=%s, end=%s",
		req.UserID, req.RoomID, req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	interval := domain.NewInterval(req.StartTime, req.EndTime)

	// 3. Получаем комнату
	room, err := uc.roomClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomClient.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 4. Бронировать можно только активную комнату
	if !room.IsActive() {
		uc.logger.Warn("CreateBooking: room id=%d is not active, status=%s", req.RoomID, room.Status)
		return nil, ErrRoomUnavailable
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Загружаем политику бронирования
		cfg, err := uc.policyRepo.Get(txCtx)
		if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateBooking: failed to get policy: %v", err)
			return fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}

		// Если политика еще не сохранена, действуют значения по умолчанию
		if cfg == nil {
			cfg = domain.DefaultPolicyConfig()
			uc.logger.Info("CreateBooking: using default policy")
		}

		// 5.2. Снимок активных бронирований пользователя (FOR UPDATE внутри транзакции)
		active, err := uc.bookingRepo.GetActiveByUser(txCtx, req.UserID, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get active bookings for user=%d: %v", req.UserID, err)
			return fmt.Errorf("%w: failed to get active bookings: %v", ErrInternal, err)
		}

		// 5.3. Проверяем правила политики
		if err := evaluatePolicy(interval, now, active, cfg); err != nil {
			uc.logger.Warn("CreateBooking: policy check failed for user=%d: %v", req.UserID, err)
			return err
		}

		// 5.4. Проверяем пересечения с бронированиями комнаты (FOR UPDATE)
		overlapping, err := uc.bookingRepo.ListOverlapping(txCtx, req.RoomID, interval, nil)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list overlapping bookings for room=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to list overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: room=%d already booked, %d overlapping", req.RoomID, len(overlapping))
			return ErrBookingConflict
		}

		// 5.5. Проверяем пересечения с техническими блокировками
		blocks, err := uc.maintenanceRepo.ListOverlapping(txCtx, req.RoomID, interval)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list maintenance blocks for room=%d: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to list maintenance blocks: %v", ErrInternal, err)
		}

		if len(blocks) > 0 {
			uc.logger.Warn("CreateBooking: room=%d blocked for maintenance, %d overlapping", req.RoomID, len(blocks))
			return ErrBookingConflict
		}

		// 5.6. Создаем бронирование с денормализацией названия комнаты
		booking := &domain.Booking{
			UserID:    req.UserID,
			RoomID:    req.RoomID,
			StartTime: interval.Start,
			EndTime:   interval.End,
			Status:    domain.StatusConfirmed,
			RoomName:  room.Name,
			Notes:     req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingConflict) && uc.metrics != nil {
			uc.metrics.IncBookingConflict()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.IncBookingCreated()
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return buildResponse(result), nil
}
