package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/internal/repository"
	"planning-bot/internal/service"
	"planning-bot/pkg/timeutil"
)

var weekdayShort = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// errorText - сообщение об ошибке для пользователя. Ошибки проверки
// отличаются от ошибок бэкенда
func errorText(err error) string {
	var rejected *repository.RejectedError

	switch {
	case errors.Is(err, errUsage):
		return "❌ Неверный формат команды. Используйте /help"
	case planning.IsValidationError(err):
		return "⚠️ Некорректные данные: " + validationReason(err)
	case repository.IsForbidden(err):
		return "⛔ Недостаточно прав для этой операции"
	case repository.IsNotFound(err):
		return "🔍 Не найдено: " + rejectedDetail(err)
	case errors.As(err, &rejected):
		return "❌ Сервер отклонил запрос: " + rejectedDetail(err)
	case errors.Is(err, repository.ErrBackendUnavailable):
		return "🔌 Сервер планирования недоступен, попробуйте позже"
	}
	return "❌ Ошибка: " + err.Error()
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, planning.ErrInvalidRange):
		return "дата окончания раньше даты начала"
	case errors.Is(err, planning.ErrInvalidTimeRange):
		return "конец смены должен быть позже начала"
	case errors.Is(err, planning.ErrInvalidQuantity):
		return "количество должно быть неотрицательным числом"
	case errors.Is(err, planning.ErrInvalidShiftType):
		return "неизвестный тип смены"
	}
	return err.Error()
}

func rejectedDetail(err error) string {
	var rejected *repository.RejectedError
	if errors.As(err, &rejected) && rejected.Detail != "" {
		return rejected.Detail
	}
	return err.Error()
}

func formatDay(d time.Time) string {
	return fmt.Sprintf("%s %s", weekdayShort[timeutil.WeekdayIndex(d)], d.Format("02.01"))
}

// formatWeekGrid - недельный график текстом, по сотруднику на блок
func formatWeekGrid(grid planning.WeekGrid, establishment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s: неделя %s - %s\n",
		establishment,
		grid.WeekStart.Format("02.01.2006"),
		grid.WeekStart.AddDate(0, 0, 6).Format("02.01.2006"))

	if len(grid.Rows) == 0 {
		b.WriteString("\nСотрудников нет")
		return b.String()
	}

	for _, row := range grid.Rows {
		fmt.Fprintf(&b, "\n👤 %s (ID %d) · %sч · %s", row.User.FullName, row.User.ID, row.Stats.HoursLabel(), row.Stats.CostLabel())
		if row.Stats.IsOvertime {
			b.WriteString(" ⚠️ переработка")
		}
		b.WriteString("\n")

		empty := true
		for i, shifts := range row.Days {
			for _, s := range shifts {
				fmt.Fprintf(&b, "  %s: %s [#%d]\n", formatDay(grid.Days[i]), s.FormatTime(), s.ID)
				empty = false
			}
		}
		if empty {
			b.WriteString("  смен нет\n")
		}
	}

	hours, cost := planning.TeamTotals(grid.Stats())
	fmt.Fprintf(&b, "\nИтого: %sч · %s", hours.StringFixed(1), cost.StringFixed(0))
	return b.String()
}

// formatStats - статистика недели по сотрудникам
func formatStats(grid planning.WeekGrid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Статистика за неделю с %s\n\n", grid.WeekStart.Format("02.01.2006"))

	overtime := 0
	for _, row := range grid.Rows {
		mark := "✅"
		if row.Stats.IsOvertime {
			mark = "⚠️"
			overtime++
		}
		fmt.Fprintf(&b, "%s %s: %sч, %s\n", mark, row.User.FullName, row.Stats.HoursLabel(), row.Stats.CostLabel())
	}

	hours, cost := planning.TeamTotals(grid.Stats())
	fmt.Fprintf(&b, "\nВсего: %sч, %s\n", hours.StringFixed(1), cost.StringFixed(0))
	fmt.Fprintf(&b, "С переработкой (> %d ч): %d", planning.OvertimeThresholdHours, overtime)
	return b.String()
}

// formatBatchResult - итог создания отсутствия; частичный результат отличается от полного
func formatBatchResult(result service.BatchResult) string {
	var b strings.Builder
	created := result.Created()
	failed := result.Failed()

	switch result.Status() {
	case service.BatchComplete:
		fmt.Fprintf(&b, "✅ Отсутствие создано: %d дн.\n", len(created))
	case service.BatchPartial:
		fmt.Fprintf(&b, "⚠️ Создано частично: %d из %d дн.\n", len(created), len(result.Outcomes))
	case service.BatchFailed:
		fmt.Fprintf(&b, "❌ Не удалось создать ни одного дня (%d дн.)\n", len(result.Outcomes))
	}

	for _, s := range created {
		fmt.Fprintf(&b, "  ✅ %s %s\n", s.PlannedStart.Format("02.01"), s.FormatTime())
	}
	for _, o := range failed {
		fmt.Fprintf(&b, "  ❌ %s: %s\n", o.Day().Format("02.01"), errorText(o.Err))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatTemplate(t models.ShiftTemplate) string {
	text := fmt.Sprintf("#%d %s: %s-%s, %s\n   Дни: %s",
		t.ID, t.Name, t.StartTime, t.EndTime, t.Position, planning.ApplicableDaysLabel(t))

	switch t.EffectiveBreakType() {
	case models.BreakRigid:
		windows := make([]string, 0, len(t.BreakTimes))
		for _, w := range t.BreakTimes {
			windows = append(windows, w.Start+"-"+w.End)
		}
		text += "\n   Перерыв: " + strings.Join(windows, ", ")
	default:
		if t.BreakDurationMinutes > 0 {
			text += fmt.Sprintf("\n   Перерыв: %d мин", t.BreakDurationMinutes)
		}
	}
	if t.BreakPaid && t.BreakMinutes() > 0 {
		text += " (оплачивается)"
	}
	return text
}

func formatUser(u models.User) string {
	rate := "не указана"
	if u.HourlyRate.Valid {
		rate = u.HourlyRate.Decimal.StringFixed(2)
	}
	return fmt.Sprintf("#%d %s (%s)\n   %s, ставка: %s", u.ID, u.FullName, roleTitle(u.Role), u.Email, rate)
}

func roleTitle(r models.Role) string {
	switch r {
	case models.RoleAdmin:
		return "администратор"
	case models.RoleManager:
		return "менеджер"
	}
	return "сотрудник"
}
