package domain

import "time"

// Interval полуоткрытый интервал времени [Start, End) в UTC
// Все вычисления занятости переговорных сводятся к этому типу:
// два интервала пересекаются только при строгом наложении, стыковка
// "конец одного == начало другого" пересечением не считается.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал, нормализуя границы к UTC
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start.UTC(), End: end.UTC()}
}

// Overlaps возвращает true, если интервалы строго пересекаются
// (a.Start < b.End && b.Start < a.End). Граничащие интервалы не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Minutes возвращает длительность интервала в минутах
func (i Interval) Minutes() int {
	return int(i.Duration() / time.Minute)
}

// IsZero возвращает true для незаполненного интервала
func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}
