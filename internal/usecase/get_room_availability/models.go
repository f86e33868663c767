package get_room_availability

import (
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

// Request модель запроса сетки доступности комнаты на день
type Request struct {
	RoomID int64
	Date   time.Time // Дата без времени
}

// Response модель ответа: рабочее окно дня, нарезанное на слоты
type Response struct {
	RoomID      int64
	RoomName    string
	Date        time.Time
	SlotMinutes int
	Slots       []domain.TimeSlot
}
