package search_rooms

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("search_rooms: invalid input")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("search_rooms: internal error")
)
