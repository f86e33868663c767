package maintenance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/RoomBookingService/internal/domain"
	"github.com/m04kA/RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/RoomBookingService/pkg/psqlbuilder"
)

var maintenanceColumns = []string{
	"id",
	"room_id",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий для чтения блоков обслуживания.
// Блоки создаёт внешний административный инструмент, сервис их только читает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блоков обслуживания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListOverlapping получает блоки обслуживания комнаты, пересекающиеся
// с интервалом (строгое пересечение полуоткрытых интервалов).
func (r *Repository) ListOverlapping(ctx context.Context, roomID int64, interval domain.Interval) ([]*domain.MaintenanceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(maintenanceColumns...).
		From("maintenance_blocks").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Lt{"start_time": interval.End}).
		Where(squirrel.Gt{"end_time": interval.Start}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// ListByRoomsBetween получает блоки обслуживания набора комнат, пересекающиеся
// с окном [from, to). Один запрос на все комнаты — используется поиском.
func (r *Repository) ListByRoomsBetween(ctx context.Context, roomIDs []int64, from, to time.Time) ([]*domain.MaintenanceBlock, error) {
	if len(roomIDs) == 0 {
		return []*domain.MaintenanceBlock{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(maintenanceColumns...).
		From("maintenance_blocks").
		Where(squirrel.Eq{"room_id": roomIDs}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("room_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomsBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoomsBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBlocks(rows)
}

// scanBlocks сканирует результаты запроса в слайс блоков
func (r *Repository) scanBlocks(rows *sql.Rows) ([]*domain.MaintenanceBlock, error) {
	blocks := make([]*domain.MaintenanceBlock, 0)

	for rows.Next() {
		var block domain.MaintenanceBlock
		var createdAt sql.NullTime

		err := rows.Scan(
			&block.ID,
			&block.RoomID,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBlocks - scan row: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlocks - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
