package domain

import "time"

// MaintenanceBlock окно технического обслуживания переговорной
// Создается внешним административным инструментом; сервис бронирования
// только читает блоки: для проверки конфликтов они эквивалентны
// подтвержденному бронированию, но не подлежат отмене через API.
type MaintenanceBlock struct {
	ID        int64
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Reason    *string
	CreatedAt time.Time
}

// Interval возвращает интервал блока обслуживания
func (m *MaintenanceBlock) Interval() Interval {
	return NewInterval(m.StartTime, m.EndTime)
}
