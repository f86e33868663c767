package domain

import "github.com/m04kA/RoomBookingService/pkg/types"

// TimeSlot represents one cell of a room's daily availability grid
type TimeSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       bool
}

// IsFree returns true if the slot can still be booked
func (s *TimeSlot) IsFree() bool {
	return s.Available
}
