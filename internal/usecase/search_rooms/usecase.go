package search_rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	roomClient "github.com/m04kA/RoomBookingService/internal/integrations/roomservice"
)

// UseCase use case поиска переговорных с классификацией доступности
type UseCase struct {
	bookingRepo     BookingRepository
	maintenanceRepo MaintenanceRepository
	policyRepo      PolicyRepository
	roomClient      RoomServiceClient
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	maintenanceRepo MaintenanceRepository,
	policyRepo PolicyRepository,
	roomClient RoomServiceClient,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		maintenanceRepo: maintenanceRepo,
		policyRepo:      policyRepo,
		roomClient:      roomClient,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет поиск: окно режется на слоты шириной из политики,
// каждая комната-кандидат получает статус по доле свободных слотов.
// Результат полностью выводится из входных данных и текущего состояния БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchRooms: from=%s, to=%s, minCapacity=%v, capabilities=%v",
		req.From.Format(time.RFC3339), req.To.Format(time.RFC3339), req.MinCapacity, req.RequiredCapabilities)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SearchRooms: validation failed: %v", err)
		return nil, err
	}

	window := domain.NewInterval(req.From, req.To)

	// 2. Каталог комнат с фильтром по вместимости и оснащению
	rooms, err := uc.roomClient.ListRooms(ctx, roomClient.RoomsFilter{
		MinCapacity:  req.MinCapacity,
		Capabilities: req.RequiredCapabilities,
	})
	if err != nil {
		uc.logger.Error("SearchRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	// 3. Отбор кандидатов: архивные комнаты выпадают, фильтры применяются
	// локально независимо от того, применил ли их каталог
	candidates := make([]*roomClient.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.IsArchived() {
			continue
		}
		if req.MinCapacity != nil && room.Capacity < *req.MinCapacity {
			continue
		}
		if !room.HasCapabilities(req.RequiredCapabilities) {
			continue
		}
		candidates = append(candidates, room)
	}

	// 4. Ширина слота из политики
	cfg, err := uc.policyRepo.Get(ctx)
	if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Error("SearchRooms: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultPolicyConfig()
	}

	slots := partitionWindow(window, cfg.TimeSlotIntervalMinutes)

	result := make([]RoomAvailability, 0, len(candidates))

	if len(candidates) > 0 {
		roomIDs := make([]int64, 0, len(candidates))
		for _, room := range candidates {
			roomIDs = append(roomIDs, room.ID)
		}

		// 5. Занятость по всем кандидатам двумя запросами
		bookings, err := uc.bookingRepo.GetConfirmedByRoomsBetween(ctx, roomIDs, window.Start, window.End)
		if err != nil {
			uc.logger.Error("SearchRooms: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.maintenanceRepo.ListByRoomsBetween(ctx, roomIDs, window.Start, window.End)
		if err != nil {
			uc.logger.Error("SearchRooms: failed to get maintenance blocks: %v", err)
			return nil, fmt.Errorf("%w: failed to get maintenance blocks: %v", ErrInternal, err)
		}

		busyByRoom := make(map[int64][]domain.Interval, len(roomIDs))
		for _, b := range bookings {
			busyByRoom[b.RoomID] = append(busyByRoom[b.RoomID], b.Interval())
		}
		for _, blk := range blocks {
			busyByRoom[blk.RoomID] = append(busyByRoom[blk.RoomID], blk.Interval())
		}

		// 6. Классификация каждой комнаты
		for _, room := range candidates {
			free := countFreeSlots(slots, busyByRoom[room.ID])
			status := domain.ClassifyAvailability(room.IsUnderMaintenance(), free, len(slots))

			result = append(result, RoomAvailability{
				RoomID:       room.ID,
				Name:         room.Name,
				Capacity:     room.Capacity,
				Capabilities: room.Capabilities,
				Status:       string(status),
			})
		}
	}

	// 7. Детерминированный порядок выдачи
	sortBy := SortByID
	if req.Sort != nil {
		sortBy = *req.Sort
	}
	sortRooms(result, sortBy)

	if uc.metrics != nil {
		uc.metrics.IncRoomSearch()
	}

	uc.logger.Info("SearchRooms: classified %d rooms over %d slots", len(result), len(slots))

	return &Response{
		From:        window.Start,
		To:          window.End,
		SlotMinutes: cfg.TimeSlotIntervalMinutes,
		Rooms:       result,
	}, nil
}
