package roomservice

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена в RoomService
	ErrRoomNotFound = errors.New("roomservice client: room not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("roomservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("roomservice client: invalid response")
)
