package search_rooms

import "time"

// Значения параметра сортировки
const (
	SortByID       = "id"
	SortByName     = "name"
	SortByCapacity = "capacity"
)

// Request модель запроса поиска переговорных
type Request struct {
	From time.Time
	To   time.Time

	MinCapacity          *int
	RequiredCapabilities []string

	// Sort задает порядок выдачи: id (по умолчанию), name или capacity
	Sort *string
}

// Response модель ответа с классификацией доступности по комнатам
type Response struct {
	From        time.Time
	To          time.Time
	SlotMinutes int
	Rooms       []RoomAvailability
}

// RoomAvailability доступность одной переговорной в запрошенном окне
type RoomAvailability struct {
	RoomID       int64
	Name         string
	Capacity     int
	Capabilities []string
	Status       string
}
