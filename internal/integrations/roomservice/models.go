package roomservice

// Статусы жизненного цикла комнаты в RoomService
const (
	RoomStatusActive      = "active"
	RoomStatusMaintenance = "maintenance"
	RoomStatusArchived    = "archived"
)

// Room модель комнаты из RoomService
type Room struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Capabilities []string `json:"capabilities"`
	Status       string   `json:"status"`
}

// IsActive возвращает true, если комната доступна для бронирования
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}

// IsUnderMaintenance возвращает true, если комната на обслуживании
func (r *Room) IsUnderMaintenance() bool {
	return r.Status == RoomStatusMaintenance
}

// IsArchived возвращает true, если комната выведена из эксплуатации
func (r *Room) IsArchived() bool {
	return r.Status == RoomStatusArchived
}

// HasCapabilities возвращает true, если комната содержит все требуемые признаки
func (r *Room) HasCapabilities(required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(r.Capabilities))
	for _, c := range r.Capabilities {
		have[c] = struct{}{}
	}
	for _, c := range required {
		if _, ok := have[c]; !ok {
			return false
		}
	}
	return true
}

// RoomsFilter фильтр каталога комнат
type RoomsFilter struct {
	MinCapacity  *int
	Capabilities []string
}

// ErrorResponse модель ошибки от RoomService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
