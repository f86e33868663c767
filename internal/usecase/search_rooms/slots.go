package search_rooms

import (
	"sort"
	"time"

	"github.com/m04kA/RoomBookingService/internal/domain"
)

// partitionWindow режет окно на последовательные слоты фиксированной ширины.
// Слоты покрывают окно целиком: последний укорачивается до его границы.
func partitionWindow(window domain.Interval, slotMinutes int) []domain.Interval {
	width := time.Duration(slotMinutes) * time.Minute

	slots := make([]domain.Interval, 0)
	for start := window.Start; start.Before(window.End); start = start.Add(width) {
		end := start.Add(width)
		if end.After(window.End) {
			end = window.End
		}
		slots = append(slots, domain.Interval{Start: start, End: end})
	}

	return slots
}

// countFreeSlots считает слоты, не пересекающиеся ни с одним занятым интервалом
func countFreeSlots(slots []domain.Interval, busy []domain.Interval) int {
	free := 0
	for _, slot := range slots {
		if !overlapsAny(slot, busy) {
			free++
		}
	}
	return free
}

func overlapsAny(slot domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// sortRooms упорядочивает выдачу; при равенстве ключа порядок решает id
func sortRooms(rooms []RoomAvailability, sortBy string) {
	switch sortBy {
	case SortByName:
		sort.Slice(rooms, func(i, j int) bool {
			if rooms[i].Name != rooms[j].Name {
				return rooms[i].Name < rooms[j].Name
			}
			return rooms[i].RoomID < rooms[j].RoomID
		})
	case SortByCapacity:
		sort.Slice(rooms, func(i, j int) bool {
			if rooms[i].Capacity != rooms[j].Capacity {
				return rooms[i].Capacity < rooms[j].Capacity
			}
			return rooms[i].RoomID < rooms[j].RoomID
		})
	default:
		sort.Slice(rooms, func(i, j int) bool {
			return rooms[i].RoomID < rooms[j].RoomID
		})
	}
}
