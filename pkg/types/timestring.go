package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

// TimeString время в формате "HH:MM" (например, "10:30")
// Используется для отображения границ слотов внутри одного дня.
// Специальное значение "24:00" обозначает конец дня (полночь следующего дня).
type TimeString string

// NewTimeString создает TimeString из time.Time (часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString создает TimeString из строки с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала дня
// Значение 1440 соответствует "24:00" (конец дня)
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > 24*60 {
		return "", fmt.Errorf("%w: %d minutes is out of day range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
// Допустимый диапазон 00:00 - 23:59 плюс значение "24:00"
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	hours, minutes, ok := t.parse()
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	if hours == 24 && minutes == 0 {
		return nil
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return nil
}

// Minutes возвращает количество минут с начала дня
// Для "24:00" возвращает 1440
func (t TimeString) Minutes() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	hours, minutes, _ := t.parse()
	return hours*60 + minutes, nil
}

// IsBefore возвращает true, если время раньше other
// Корректно для валидных значений за счет лексикографического сравнения "HH:MM"
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если время позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Возвращает ошибку при выходе за границы дня (позже "24:00")
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	return NewTimeStringFromMinutes(total)
}

func (t TimeString) parse() (hours, minutes int, ok bool) {
	var h, m int
	n, err := fmt.Sscanf(string(t), "%02d:%02d", &h, &m)
	if err != nil || n != 2 {
		return 0, 0, false
	}
	return h, m, true
}
