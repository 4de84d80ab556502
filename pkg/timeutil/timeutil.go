package timeutil

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	LocalLayout = "2006-01-02T15:04:05"
	ClockLayout = "15:04"
)

// ErrInvalidRange - конец диапазона раньше начала
var ErrInvalidRange = errors.New("invalid range: end is before start")

// Все "наивные" даты живут в UTC: зона не несет смысла, зато нет сдвигов летнего времени
var naive = time.UTC

// Naive - отбрасывает зону, сохраняя показания часов
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, naive)
}

// Today - сегодняшняя дата в наивном представлении
func Today() time.Time {
	return StartOfDay(Naive(time.Now()))
}

// StartOfDay - полночь того же календарного дня
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay - совпадают ли календарные дни
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekStart - возвращает первый день недели (по умолчанию понедельник), в которую попадает date
func WeekStart(date time.Time, weekStartsOn time.Weekday) time.Time {
	day := StartOfDay(date)
	offset := (int(day.Weekday()) - int(weekStartsOn) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekDays - ровно 7 последовательных дней начиная с weekStart
func WeekDays(weekStart time.Time) []time.Time {
	first := StartOfDay(weekStart)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// DaysBetweenInclusive - ленивая последовательность всех календарных дней от start до end включительно
func DaysBetweenInclusive(start, end time.Time) (iter.Seq[time.Time], error) {
	first := StartOfDay(start)
	last := StartOfDay(end)
	if last.Before(first) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, first.Format(DateLayout), last.Format(DateLayout))
	}

	return func(yield func(time.Time) bool) {
		for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
			if !yield(date) {
				return
			}
		}
	}, nil
}

// DurationMinutes - целые минуты между отметками, может быть отрицательным
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// WeekdayIndex - номер дня недели, где 0 = понедельник, 6 = воскресенье
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseWeekday - разбирает название дня недели ("monday", "sunday"...)
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday %q", s)
}

// ParseDate - разбирает календарную дату в нескольких форматах
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	formats := []string{
		DateLayout,
		"02.01.2006",
		"02-01-2006",
		"02.01",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, s, naive); err == nil {
			// Если год не указан, берем текущий
			if !strings.Contains(format, "2006") {
				t = time.Date(Today().Year(), t.Month(), t.Day(), 0, 0, 0, 0, naive)
			}
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or DD.MM.YYYY", s)
}

// ParseLocal - разбирает ISO-8601 метку без зоны (с секундами или без)
func ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	formats := []string{
		LocalLayout,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, s, naive); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid local timestamp %q", s)
}

// FormatLocal - форматирует метку как YYYY-MM-DDTHH:MM:SS
func FormatLocal(t time.Time) string {
	return t.Format(LocalLayout)
}

// Clock - время суток без даты
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock - разбирает HH:MM (секунды допускаются и отбрасываются)
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, format := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(format, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid clock %q: use HH:MM", s)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes - минут от полуночи
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// At - дата date с временем суток c
func At(date time.Time, c Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}
