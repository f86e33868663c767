package get_room_availability

import (
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
	getRoomAvailability "github.com/m04kA/RoomBookingService/internal/usecase/get_room_availability"
)

// RoomAvailabilityResponse HTTP response model
type RoomAvailabilityResponse struct {
	RoomID      int64      `json:"roomId"`
	RoomName    string     `json:"roomName"`
	Date        string     `json:"date"`
	SlotMinutes int        `json:"slotMinutes"`
	Slots       []TimeSlot `json:"slots"`
}

// TimeSlot ячейка дневной сетки доступности
type TimeSlot struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "10:30"
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(roomID int64, dateStr string) (*getRoomAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getRoomAvailability.Request{
		RoomID: roomID,
		Date:   date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRoomAvailability.Response) *RoomAvailabilityResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = TimeSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
		}
	}

	return &RoomAvailabilityResponse{
		RoomID:      resp.RoomID,
		RoomName:    resp.RoomName,
		Date:        resp.Date.Format(domain.DateFormat),
		SlotMinutes: resp.SlotMinutes,
		Slots:       slots,
	}
}
