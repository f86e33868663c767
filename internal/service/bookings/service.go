package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/booking"
	userClient "github.com/m04kA/RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/RoomBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	userClient  UserServiceClient
	timer       TimeProvider
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	timer TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userClient:  userClient,
		timer:       timer,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только своё бронирование, администратор — любое.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkOwnerOrAdmin(ctx, booking.UserID, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requesterID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking, s.timer.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Доступна самому пользователю и администраторам. Опциональный фильтр
// по статусу применяется к эффективному статусу, поэтому expired
// работает без фоновых обновлений строк.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, requester=%d, status=%v",
		req.UserID, req.RequesterID, req.Status)

	if err := s.checkOwnerOrAdmin(ctx, req.UserID, req.RequesterID); err != nil {
		s.logger.Warn("GetUserBookings: access denied for user=%d to history of user=%d", req.RequesterID, req.UserID)
		return nil, err
	}

	// Валидируем фильтр до похода в базу
	var statusFilter *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToStatusFilter(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statusFilter = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timer.Now()

	if statusFilter != nil {
		filtered := make([]*domain.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.EffectiveStatus(now) == *statusFilter {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, now), nil
}

// GetRoomBookings получает бронирования комнаты с фильтрацией по периоду.
// Доступно только администраторам.
func (s *Service) GetRoomBookings(ctx context.Context, req *models.GetRoomBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetRoomBookings: fetching bookings for room=%d, requester=%d", req.RoomID, req.RequesterID)

	if err := s.requireAdmin(ctx, req.RequesterID); err != nil {
		s.logger.Warn("GetRoomBookings: access denied for user=%d", req.RequesterID)
		return nil, err
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("GetRoomBookings: invalid period for room=%d", req.RoomID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByRoomWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetRoomBookings: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: GetRoomBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetRoomBookings: fetched %d bookings for room=%d", len(bookings), req.RoomID)
	return models.FromDomainBookingList(bookings, s.timer.Now()), nil
}

// Cancel отменяет бронирование и возвращает его итоговое состояние.
// Владелец отменяет своё, администратор — любое. Отмена необратима:
// повторная отмена и отмена завершившегося бронирования отклоняются,
// cancelled_at однажды выставленным больше не меняется.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.RequesterID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if err := s.checkOwnerOrAdmin(ctx, booking.UserID, req.RequesterID); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.RequesterID, bookingID)
		return nil, err
	}

	now := s.timer.Now()

	// Быстрая проверка по снимку: уже отменено или завершилось
	if booking.IsCancelled() || booking.EffectiveStatus(now) == domain.StatusExpired {
		s.logger.Warn("Cancel: booking id=%d is not cancellable, status=%s", bookingID, booking.EffectiveStatus(now))
		return nil, ErrAlreadyCancelled
	}

	err = s.bookingRepo.CancelConfirmed(ctx, bookingID, req.RequesterID, now)
	if err != nil {
		// Условный UPDATE не нашёл строку: конкурирующая отмена успела раньше
		if errors.Is(err, bookingRepo.ErrNotCancellable) {
			s.logger.Warn("Cancel: booking id=%d cancelled concurrently", bookingID)
			return nil, ErrAlreadyCancelled
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем строку: cancelled_at и updated_at берём из базы,
	// а не из снимка до обновления
	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - failed to reload booking: %v", ErrInternal, err)
	}

	if s.metrics != nil {
		s.metrics.IncBookingCancelled()
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by user=%d", bookingID, req.RequesterID)
	return models.FromDomainBooking(cancelled, now), nil
}

// Вспомогательные методы

// checkOwnerOrAdmin проверяет, что запрашивающий — владелец ресурса
// или администратор
func (s *Service) checkOwnerOrAdmin(ctx context.Context, ownerID, requesterID int64) error {
	if ownerID == requesterID {
		return nil
	}
	return s.requireAdmin(ctx, requesterID)
}

// requireAdmin проверяет через UserService, что пользователь — администратор
func (s *Service) requireAdmin(ctx context.Context, userID int64) error {
	user, err := s.userClient.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("requireAdmin: user id=%d not found", userID)
			return ErrAccessDenied
		}
		s.logger.Error("requireAdmin: failed to get user id=%d: %v", userID, err)
		return fmt.Errorf("%w: requireAdmin - failed to get user: %v", ErrInternal, err)
	}

	if !user.IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}
