package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"

	// StatusExpired производный статус: подтвержденное бронирование,
	// время окончания которого уже прошло. В БД не хранится — вычисляется
	// через EffectiveStatus при каждом чтении.
	StatusExpired BookingStatus = "expired"
)

// Booking represents a room booking in the system
type Booking struct {
	ID        int64
	UserID    int64
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	// Denormalized data for history
	RoomName string
	Notes    *string

	CancelledBy *int64
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал бронирования
func (b *Booking) Interval() Interval {
	return NewInterval(b.StartTime, b.EndTime)
}

// EffectiveStatus возвращает статус с учетом истечения времени:
// подтвержденное бронирование с прошедшим EndTime считается expired.
// Отмененное бронирование остается cancelled независимо от времени.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusConfirmed && !b.EndTime.After(now) {
		return StatusExpired
	}
	return b.Status
}

// IsActiveAt возвращает true для подтвержденного бронирования,
// время окончания которого еще не наступило
func (b *Booking) IsActiveAt(now time.Time) bool {
	return b.Status == StatusConfirmed && b.EndTime.After(now)
}

// IsCancelled возвращает true, если бронирование отменено
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// RoomBookingsFilter фильтр для получения бронирований переговорной
type RoomBookingsFilter struct {
	RoomID          int64      // Обязательный параметр
	From            *time.Time // Начало периода (опционально)
	To              *time.Time // Конец периода (опционально)
	IncludeInactive bool       // Включать ли отмененные бронирования
}
