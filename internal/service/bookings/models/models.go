package models

import (
	"errors"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	RequesterID int64 `json:"requesterId"`
}

// GetUserBookingsRequest запрос на историю бронирований пользователя
type GetUserBookingsRequest struct {
	UserID      int64   `json:"userId"`
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"` // confirmed | cancelled | expired
}

// GetRoomBookingsRequest запрос на бронирования комнаты (административный)
type GetRoomBookingsRequest struct {
	RoomID          int64      `json:"roomId"`
	RequesterID     int64      `json:"requesterId"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetRoomBookingsRequest) ToDomainFilter() domain.RoomBookingsFilter {
	return domain.RoomBookingsFilter{
		RoomID:          r.RoomID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования.
// Status — эффективный статус на момент запроса: подтверждённое
// бронирование с прошедшим end_time отдаётся как expired.
type BookingResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	RoomID    int64     `json:"roomId"`
	RoomName  string    `json:"roomName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`

	CancelledBy *int64  `json:"cancelledBy,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, вычисляя
// эффективный статус на момент now
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.EffectiveStatus(now)),
		Notes:       b.Notes,
		CancelledBy: b.CancelledBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToStatusFilter конвертирует строку запроса в domain.BookingStatus с валидацией.
// Допускает и вычисляемый статус expired.
func ToStatusFilter(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusExpired,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
