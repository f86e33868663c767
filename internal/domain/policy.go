package domain

import "time"

// PolicyConfig правила бронирования, единые для всех переговорных
// Хранится единственной строкой; замена выполняется атомарно целиком.
// Если строка еще не создана, действует DefaultPolicyConfig.
type PolicyConfig struct {
	OpenHour  int // Час открытия, [0, 24)
	CloseHour int // Час закрытия, (0, 24], 24 = до конца суток

	TimeSlotIntervalMinutes int // Шаг сетки слотов для поиска и выдачи доступности

	MinDurationMinutes int // Минимальная длительность бронирования
	MaxDurationMinutes int // Максимальная длительность бронирования

	MaxActiveBookings      int  // Лимит активных бронирований на пользователя
	MaxConsecutiveBookings *int // Лимит подряд идущих бронирований (nil = без лимита)
	CooldownMinutes        *int // Пауза между бронированиями пользователя (nil или 0 = без паузы)

	MinNoticeMinutes int // Минимальное время от текущего момента до начала
	MaxDaysAhead     int // Горизонт бронирования в днях

	UpdatedAt time.Time
}

// DefaultPolicyConfig возвращает конфигурацию по умолчанию
// Используется, пока администратор не сохранил собственную.
func DefaultPolicyConfig() *PolicyConfig {
	return &PolicyConfig{
		OpenHour:                DefaultOpenHour,
		CloseHour:               DefaultCloseHour,
		TimeSlotIntervalMinutes: DefaultTimeSlotIntervalMinutes,
		MinDurationMinutes:      DefaultMinDurationMinutes,
		MaxDurationMinutes:      DefaultMaxDurationMinutes,
		MaxActiveBookings:       DefaultMaxActiveBookings,
		MinNoticeMinutes:        DefaultMinNoticeMinutes,
		MaxDaysAhead:            DefaultMaxDaysAhead,
	}
}

// HasConsecutiveLimit возвращает true, если задан лимит подряд идущих бронирований
func (c *PolicyConfig) HasConsecutiveLimit() bool {
	return c.MaxConsecutiveBookings != nil
}

// HasCooldown возвращает true, если задана ненулевая пауза между бронированиями
func (c *PolicyConfig) HasCooldown() bool {
	return c.CooldownMinutes != nil && *c.CooldownMinutes > 0
}

// OperatingWindowMinutes возвращает границы рабочего окна в минутах от начала суток
func (c *PolicyConfig) OperatingWindowMinutes() (open, close int) {
	return c.OpenHour * MinutesPerHour, c.CloseHour * MinutesPerHour
}
