package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/RoomBookingService/pkg/psqlbuilder"
)

// singletonID — фиксированный идентификатор единственной строки политики.
// CHECK (id = 1) в схеме не даёт появиться второй строке.
const singletonID = 1

// Repository репозиторий для работы с политикой бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущую политику бронирования.
// Если строка ещё не создана, возвращает ErrPolicyNotFound —
// вызывающий слой подставляет значения по умолчанию.
func (r *Repository) Get(ctx context.Context) (*domain.PolicyConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"open_hour",
		"close_hour",
		"time_slot_interval_minutes",
		"min_duration_minutes",
		"max_duration_minutes",
		"max_active_bookings",
		"max_consecutive_bookings",
		"cooldown_minutes",
		"min_notice_minutes",
		"max_days_ahead",
		"updated_at",
	).
		From("booking_policy").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.PolicyConfig
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.OpenHour,
		&cfg.CloseHour,
		&cfg.TimeSlotIntervalMinutes,
		&cfg.MinDurationMinutes,
		&cfg.MaxDurationMinutes,
		&cfg.MaxActiveBookings,
		&cfg.MaxConsecutiveBookings,
		&cfg.CooldownMinutes,
		&cfg.MinNoticeMinutes,
		&cfg.MaxDaysAhead,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan policy: %v", ErrScanRow, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert атомарно заменяет политику: INSERT при первом сохранении,
// UPDATE всех полей одной командой при последующих. Частичных
// промежуточных состояний не бывает.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.PolicyConfig) (*domain.PolicyConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_policy").
		Columns(
			"id",
			"open_hour",
			"close_hour",
			"time_slot_interval_minutes",
			"min_duration_minutes",
			"max_duration_minutes",
			"max_active_bookings",
			"max_consecutive_bookings",
			"cooldown_minutes",
			"min_notice_minutes",
			"max_days_ahead",
		).
		Values(
			singletonID,
			cfg.OpenHour,
			cfg.CloseHour,
			cfg.TimeSlotIntervalMinutes,
			cfg.MinDurationMinutes,
			cfg.MaxDurationMinutes,
			cfg.MaxActiveBookings,
			cfg.MaxConsecutiveBookings,
			cfg.CooldownMinutes,
			cfg.MinNoticeMinutes,
			cfg.MaxDaysAhead,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_hour = EXCLUDED.open_hour,
			close_hour = EXCLUDED.close_hour,
			time_slot_interval_minutes = EXCLUDED.time_slot_interval_minutes,
			min_duration_minutes = EXCLUDED.min_duration_minutes,
			max_duration_minutes = EXCLUDED.max_duration_minutes,
			max_active_bookings = EXCLUDED.max_active_bookings,
			max_consecutive_bookings = EXCLUDED.max_consecutive_bookings,
			cooldown_minutes = EXCLUDED.cooldown_minutes,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			max_days_ahead = EXCLUDED.max_days_ahead,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
