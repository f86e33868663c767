package domain

// AvailabilityStatus — агрегированная доступность комнаты на запрошенном окне.
type AvailabilityStatus string

const (
	// AvailabilityAvailable — ни один слот окна не занят.
	AvailabilityAvailable AvailabilityStatus = "available"
	// AvailabilityPartial — часть слотов занята, часть свободна.
	AvailabilityPartial AvailabilityStatus = "partially_available"
	// AvailabilityUnavailable — все слоты окна заняты бронированиями.
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
	// AvailabilityMaintenance — окно пересекается с блоком обслуживания,
	// статус перекрывает остальные независимо от свободных слотов.
	AvailabilityMaintenance AvailabilityStatus = "maintenance"
)

// ClassifyAvailability выводит статус комнаты из результатов проверки слотов.
// Блок обслуживания имеет безусловный приоритет.
func ClassifyAvailability(underMaintenance bool, freeSlots, totalSlots int) AvailabilityStatus {
	if underMaintenance {
		return AvailabilityMaintenance
	}
	switch {
	case totalSlots == 0 || freeSlots == totalSlots:
		return AvailabilityAvailable
	case freeSlots == 0:
		return AvailabilityUnavailable
	default:
		return AvailabilityPartial
	}
}
