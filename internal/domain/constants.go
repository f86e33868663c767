package domain

// Default policy values
const (
	DefaultOpenHour                = 8
	DefaultCloseHour               = 22
	DefaultTimeSlotIntervalMinutes = 30
	DefaultMinDurationMinutes      = 30
	DefaultMaxDurationMinutes      = 240 // 4 hours
	DefaultMaxActiveBookings       = 5
	DefaultMinNoticeMinutes        = 60 // 1 hour
	DefaultMaxDaysAhead            = 30
)

// Business validation constants
const (
	MinOperatingHour = 0
	MaxOperatingHour = 24
	MaxNotesLength   = 500
)

// Time constants
const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
