package policy

import "errors"

// Ошибки валидации конфигурации. Каждая соответствует стабильному коду API.
var (
	// ErrInvalidHours возвращается при некорректных часах работы:
	// openHour вне [0,24), closeHour вне (0,24] или open ≥ close
	ErrInvalidHours = errors.New("invalid operating hours")

	// ErrInvalidTimeSlotInterval возвращается при неположительной ширине слота
	ErrInvalidTimeSlotInterval = errors.New("invalid time slot interval")

	// ErrInvalidMinDuration возвращается при неположительной минимальной длительности
	ErrInvalidMinDuration = errors.New("invalid min duration")

	// ErrInvalidMaxDuration возвращается при неположительной максимальной длительности
	ErrInvalidMaxDuration = errors.New("invalid max duration")

	// ErrInvalidDurationRange возвращается, когда min длительность больше max
	ErrInvalidDurationRange = errors.New("invalid duration range")

	// ErrInvalidMaxActiveBookings возвращается при неположительной квоте активных бронирований
	ErrInvalidMaxActiveBookings = errors.New("invalid max active bookings")

	// ErrInvalidMaxConsecutive возвращается при неположительном лимите цепочки
	ErrInvalidMaxConsecutive = errors.New("invalid max consecutive bookings")

	// ErrInvalidCooldown возвращается при отрицательном кулдауне
	ErrInvalidCooldown = errors.New("invalid cooldown")

	// ErrInvalidMinNotice возвращается при отрицательном минимальном уведомлении
	ErrInvalidMinNotice = errors.New("invalid min notice")

	// ErrInvalidMaxDaysAhead возвращается при неположительном горизонте бронирования
	ErrInvalidMaxDaysAhead = errors.New("invalid max days ahead")
)

var (
	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
