package planning

import (
	"fmt"
	"slices"
	"time"

	"planning-bot/internal/models"
	"planning-bot/pkg/timeutil"
)

// AllDays - индексы всех дней недели, 0 = понедельник
var AllDays = []int{0, 1, 2, 3, 4, 5, 6}

// ApplyTemplate проецирует шаблон на дату. applicable_days не проверяются:
// менеджер может поставить смену в нетипичный день
func ApplyTemplate(t models.ShiftTemplate, date time.Time) (WorkDraft, error) {
	start, err := timeutil.ParseClock(t.StartTime)
	if err != nil {
		return WorkDraft{}, fmt.Errorf("%w: start_time: %v", ErrInvalidTemplate, err)
	}
	end, err := timeutil.ParseClock(t.EndTime)
	if err != nil {
		return WorkDraft{}, fmt.Errorf("%w: end_time: %v", ErrInvalidTemplate, err)
	}

	day := timeutil.StartOfDay(timeutil.Naive(date))
	return WorkDraft{
		Start:    timeutil.At(day, start),
		End:      timeutil.At(day, end),
		Position: t.Position,
	}, nil
}

// IsApplicableOn - подсказка для интерфейса, применение не блокирует
func IsApplicableOn(t models.ShiftTemplate, date time.Time) bool {
	return t.AppliesOn(date)
}

// ValidateTemplate проверяет шаблон и возвращает его с заполненными значениями по умолчанию
func ValidateTemplate(t models.ShiftTemplate) (models.ShiftTemplate, error) {
	tpl := t
	if tpl.BreakType == "" {
		tpl.BreakType = models.BreakFlexible
	}
	if len(tpl.ApplicableDays) == 0 {
		tpl.ApplicableDays = slices.Clone(AllDays)
	} else {
		tpl.ApplicableDays = slices.Clone(tpl.ApplicableDays)
		slices.Sort(tpl.ApplicableDays)
		tpl.ApplicableDays = slices.Compact(tpl.ApplicableDays)
	}

	if err := validate.Struct(tpl); err != nil {
		return tpl, fmt.Errorf("%w: %s", ErrInvalidTemplate, describe(err))
	}

	start, _ := timeutil.ParseClock(tpl.StartTime)
	end, _ := timeutil.ParseClock(tpl.EndTime)
	// Ночные смены не поддерживаются: проекция дает конец раньше начала
	if end.Minutes() <= start.Minutes() {
		return tpl, fmt.Errorf("%w: end_time %s must be after start_time %s", ErrInvalidTemplate, tpl.EndTime, tpl.StartTime)
	}

	switch tpl.BreakType {
	case models.BreakFlexible:
		if len(tpl.BreakTimes) > 0 {
			return tpl, fmt.Errorf("%w: flexible break has no break_times", ErrInvalidTemplate)
		}
	case models.BreakRigid:
		if tpl.BreakDurationMinutes != 0 {
			return tpl, fmt.Errorf("%w: rigid break uses break_times, not break_duration_minutes", ErrInvalidTemplate)
		}
		if err := checkBreakWindows(tpl.BreakTimes); err != nil {
			return tpl, err
		}
	}

	return tpl, nil
}

func checkBreakWindows(windows []models.BreakWindow) error {
	prevEnd := -1
	for i, w := range windows {
		start, _ := timeutil.ParseClock(w.Start)
		end, _ := timeutil.ParseClock(w.End)
		if end.Minutes() <= start.Minutes() {
			return fmt.Errorf("%w: break %d ends before it starts", ErrInvalidTemplate, i+1)
		}
		if start.Minutes() < prevEnd {
			return fmt.Errorf("%w: break %d overlaps the previous one", ErrInvalidTemplate, i+1)
		}
		prevEnd = end.Minutes()
	}
	return nil
}

// ApplicableDaysLabel - дни недели шаблона в виде "Пн Вт Ср"
func ApplicableDaysLabel(t models.ShiftTemplate) string {
	names := []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}
	days := t.ApplicableDays
	if len(days) == 0 {
		days = AllDays
	}

	label := ""
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		if label != "" {
			label += " "
		}
		label += names[d]
	}
	return label
}
