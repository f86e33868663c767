package get_room_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	roomClient "github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
)

// UseCase use case для получения сетки доступности комнаты на день
type UseCase struct {
	bookingRepo     BookingRepository
	maintenanceRepo MaintenanceRepository
	policyRepo      PolicyRepository
	roomClient      RoomServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	maintenanceRepo MaintenanceRepository,
	policyRepo PolicyRepository,
	roomClient RoomServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		maintenanceRepo: maintenanceRepo,
		policyRepo:      policyRepo,
		roomClient:      roomClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomAvailability: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetRoomAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем комнату
	room, err := uc.roomClient.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomClient.ErrRoomNotFound) {
			uc.logger.Warn("GetRoomAvailability: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetRoomAvailability: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// Архивная комната недоступна наравне с отсутствующей
	if room.IsArchived() {
		uc.logger.Warn("GetRoomAvailability: room id=%d is archived", req.RoomID)
		return nil, ErrRoomNotFound
	}

	// 4. Загружаем политику бронирования
	cfg, err := uc.policyRepo.Get(ctx)
	if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Error("GetRoomAvailability: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultPolicyConfig()
	}

	// 5. Валидация даты с учетом горизонта бронирования
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)
	if err := validateDate(date, now, cfg.MaxDaysAhead); err != nil {
		uc.logger.Warn("GetRoomAvailability: date validation failed: %v", err)
		return nil, err
	}

	window := operatingWindow(date, cfg)

	// 6. Собираем занятые интервалы дня
	var busy []domain.Interval

	if room.IsUnderMaintenance() {
		// Комната на обслуживании: вся сетка занята
		busy = []domain.Interval{window}
	} else {
		bookings, err := uc.bookingRepo.GetConfirmedByRoomsBetween(ctx, []int64{req.RoomID}, window.Start, window.End)
		if err != nil {
			uc.logger.Error("GetRoomAvailability: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.maintenanceRepo.ListOverlapping(ctx, req.RoomID, window)
		if err != nil {
			uc.logger.Error("GetRoomAvailability: failed to get maintenance blocks: %v", err)
			return nil, fmt.Errorf("%w: failed to get maintenance blocks: %v", ErrInternal, err)
		}

		busy = make([]domain.Interval, 0, len(bookings)+len(blocks))
		for _, b := range bookings {
			busy = append(busy, b.Interval())
		}
		for _, blk := range blocks {
			busy = append(busy, blk.Interval())
		}
	}

	// 7. Строим сетку слотов
	slots := buildDayGrid(window, cfg.TimeSlotIntervalMinutes, busy)

	uc.logger.Info("GetRoomAvailability: built %d slots for room=%d, date=%s",
		len(slots), req.RoomID, date.Format(domain.DateFormat))

	return &Response{
		RoomID:      room.ID,
		RoomName:    room.Name,
		Date:        date,
		SlotMinutes: cfg.TimeSlotIntervalMinutes,
		Slots:       slots,
	}, nil
}
