package search_rooms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	searchRooms "github.com/m04kA/RoomBookingService/internal/usecase/search_rooms"
)

// SearchRoomsResponse HTTP response model
type SearchRoomsResponse struct {
	From        string             `json:"from"`
	To          string             `json:"to"`
	SlotMinutes int                `json:"slotMinutes"`
	Rooms       []RoomAvailability `json:"rooms"`
}

// RoomAvailability доступность одной переговорной в запрошенном окне
type RoomAvailability struct {
	RoomID       int64    `json:"roomId"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Capabilities []string `json:"capabilities"`
	Status       string   `json:"status"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(fromStr, toStr, minCapacityStr, capabilitiesStr, sortStr string) (*searchRooms.Request, error) {
	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, fmt.Errorf("invalid from value: %w", err)
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, fmt.Errorf("invalid to value: %w", err)
	}

	req := &searchRooms.Request{
		From: from,
		To:   to,
	}

	// Парсим minCapacity если указан
	if minCapacityStr != "" {
		minCapacity, err := strconv.Atoi(minCapacityStr)
		if err != nil {
			return nil, fmt.Errorf("invalid minCapacity value: %w", err)
		}
		req.MinCapacity = &minCapacity
	}

	// Капабилити передаются списком через запятую: capabilities=tv,whiteboard
	if capabilitiesStr != "" {
		parts := strings.Split(capabilitiesStr, ",")
		capabilities := make([]string, 0, len(parts))
		for _, p := range parts {
			if c := strings.TrimSpace(p); c != "" {
				capabilities = append(capabilities, c)
			}
		}
		req.RequiredCapabilities = capabilities
	}

	if sortStr != "" {
		req.Sort = &sortStr
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchRooms.Response) *SearchRoomsResponse {
	rooms := make([]RoomAvailability, len(resp.Rooms))
	for i, room := range resp.Rooms {
		rooms[i] = RoomAvailability{
			RoomID:       room.RoomID,
			Name:         room.Name,
			Capacity:     room.Capacity,
			Capabilities: room.Capabilities,
			Status:       room.Status,
		}
	}

	return &SearchRoomsResponse{
		From:        resp.From.Format(time.RFC3339),
		To:          resp.To.Format(time.RFC3339),
		SlotMinutes: resp.SlotMinutes,
		Rooms:       rooms,
	}
}
