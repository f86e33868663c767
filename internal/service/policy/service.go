package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RoomBookingService/internal/domain"
	policyRepo "github.com/m04kA/RoomBookingService/internal/infra/storage/policy"
	userClient "github.com/m04kA/RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/RoomBookingService/internal/service/policy/models"
)

// Service сервис для работы с политикой бронирования
type Service struct {
	policyRepo PolicyRepository
	userClient UserServiceClient
	logger     Logger
}

// NewService создает новый экземпляр сервиса политики
func NewService(
	policyRepo PolicyRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		policyRepo: policyRepo,
		userClient: userClient,
		logger:     logger,
	}
}

// Get возвращает действующую политику бронирования.
// Публичный метод: пока администратор её не сохранял, действуют
// значения по умолчанию.
func (s *Service) Get(ctx context.Context) (*models.PolicyResponse, error) {
	cfg, err := s.loadOrDefaults(ctx)
	if err != nil {
		s.logger.Error("Get: failed to load policy: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPolicy(cfg), nil
}

// Update частично обновляет политику бронирования.
// Доступно только администраторам. Переданные поля сливаются с текущей
// политикой в одно эффективное значение, оно валидируется целиком и
// сохраняется единственным UPSERT — промежуточных состояний не бывает.
func (s *Service) Update(ctx context.Context, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating policy by user=%d", req.RequesterID)

	if err := s.requireAdmin(ctx, req.RequesterID); err != nil {
		s.logger.Warn("Update: access denied for user=%d", req.RequesterID)
		return nil, err
	}

	if req.IsEmpty() {
		s.logger.Warn("Update: empty update request from user=%d", req.RequesterID)
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := s.loadOrDefaults(ctx)
	if err != nil {
		s.logger.Error("Update: failed to load current policy: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Валидируем слитое значение на копии, текущая политика
	// остаётся нетронутой при отказе
	merged := *current
	req.ApplyToConfig(&merged)

	if err := validatePolicyConfig(&merged); err != nil {
		s.logger.Warn("Update: validation failed for user=%d: %v", req.RequesterID, err)
		return nil, err
	}

	updated, err := s.policyRepo.Upsert(ctx, &merged)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: policy updated by user=%d", req.RequesterID)
	return models.FromDomainPolicy(updated), nil
}

// Вспомогательные методы

// loadOrDefaults читает сохранённую политику, при отсутствии строки
// возвращает значения по умолчанию
func (s *Service) loadOrDefaults(ctx context.Context) (*domain.PolicyConfig, error) {
	cfg, err := s.policyRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			return domain.DefaultPolicyConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
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
