package domain

// Stable error codes returned in API responses. Clients match on these
// strings, so they never change even when messages do.
const (
	// Policy validation codes
	CodeInvalidHours             = "INVALID_HOURS"
	CodeInvalidTimeSlotInterval  = "INVALID_TIME_SLOT_INTERVAL"
	CodeInvalidMinDuration       = "INVALID_MIN_DURATION"
	CodeInvalidMaxDuration       = "INVALID_MAX_DURATION"
	CodeInvalidDurationRange     = "INVALID_DURATION_RANGE"
	CodeInvalidMaxActiveBookings = "INVALID_MAX_ACTIVE_BOOKINGS"
	CodeInvalidMaxConsecutive    = "INVALID_MAX_CONSECUTIVE"
	CodeInvalidCooldown          = "INVALID_COOLDOWN"
	CodeInvalidMinNotice         = "INVALID_MIN_NOTICE"
	CodeInvalidMaxDaysAhead      = "INVALID_MAX_DAYS_AHEAD"

	// Booking request validation codes
	CodeInvalidTimeRange          = "INVALID_TIME_RANGE"
	CodeOutsideOperatingHours     = "OUTSIDE_OPERATING_HOURS"
	CodeDurationTooShort          = "DURATION_TOO_SHORT"
	CodeDurationTooLong           = "DURATION_TOO_LONG"
	CodeInsufficientNotice        = "INSUFFICIENT_NOTICE"
	CodeTooFarAhead               = "TOO_FAR_AHEAD"
	CodeMaxActiveBookingsExceeded = "MAX_ACTIVE_BOOKINGS_EXCEEDED"
	CodeMaxConsecutiveExceeded    = "MAX_CONSECUTIVE_EXCEEDED"
	CodeCooldownViolation         = "COOLDOWN_VIOLATION"

	// Booking lifecycle codes
	CodeBookingConflict  = "BOOKING_CONFLICT"
	CodeBookingNotFound  = "BOOKING_NOT_FOUND"
	CodeAlreadyCancelled = "ALREADY_CANCELLED"
	CodeRoomNotFound     = "ROOM_NOT_FOUND"
	CodeRoomUnavailable  = "ROOM_UNAVAILABLE"
	CodePolicyNotFound   = "POLICY_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"

	// Generic codes
	CodeAccessDenied    = "ACCESS_DENIED"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternalError   = "INTERNAL_ERROR"
)
