package create_booking

import "errors"

var (
	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("create_booking: outside operating hours")

	// ErrDurationTooShort возвращается, когда длительность меньше минимальной
	ErrDurationTooShort = errors.New("create_booking: duration too short")

	// ErrDurationTooLong возвращается, когда длительность больше максимальной
	ErrDurationTooLong = errors.New("create_booking: duration too long")

	// ErrInsufficientNotice возвращается, когда до начала осталось меньше минимального уведомления
	ErrInsufficientNotice = errors.New("create_booking: insufficient notice")

	// ErrTooFarAhead возвращается, когда начало дальше горизонта планирования
	ErrTooFarAhead = errors.New("create_booking: too far ahead")

	// ErrMaxActiveBookingsExceeded возвращается при превышении лимита активных бронирований
	ErrMaxActiveBookingsExceeded = errors.New("create_booking: max active bookings exceeded")

	// ErrMaxConsecutiveExceeded возвращается при превышении лимита подряд идущих бронирований
	ErrMaxConsecutiveExceeded = errors.New("create_booking: max consecutive bookings exceeded")

	// ErrCooldownViolation возвращается, когда не выдержана пауза между бронированиями
	ErrCooldownViolation = errors.New("create_booking: cooldown violation")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomUnavailable возвращается, когда комната не в статусе active
	ErrRoomUnavailable = errors.New("create_booking: room unavailable")

	// ErrBookingConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrBookingConflict = errors.New("create_booking: booking conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_booking: internal error")
)
