package get_room_availability

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена или выведена из эксплуатации
	ErrRoomNotFound = errors.New("get_room_availability: room not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("get_room_availability: invalid date")

	// ErrDateTooFarAhead возвращается, когда дата дальше горизонта бронирования
	ErrDateTooFarAhead = errors.New("get_room_availability: date is too far ahead")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_room_availability: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("get_room_availability: internal error")
)
