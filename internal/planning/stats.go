package planning

import (
	"time"

	"planning-bot/internal/models"
	"planning-bot/pkg/timeutil"

	"github.com/shopspring/decimal"
)

// OvertimeThresholdHours - недельный порог сверхурочных, фиксированный
const OvertimeThresholdHours = 35

var (
	overtimeThreshold = decimal.NewFromInt(OvertimeThresholdHours)
	minutesPerHour    = decimal.NewFromInt(60)
)

// ComputeWeeklyStats считает часы, стоимость и переработку сотрудника за неделю,
// начинающуюся в weekStart. Учитываются только рабочие смены, перерывы не вычитаются
func ComputeWeeklyStats(shifts []models.Shift, user models.User, weekStart time.Time) models.WeeklyStat {
	from := timeutil.StartOfDay(timeutil.Naive(weekStart))
	to := from.AddDate(0, 0, 7)

	minutes := 0
	for i := range shifts {
		s := &shifts[i]
		if s.UserID != user.ID || !s.IsWork() {
			continue
		}
		// сравниваются часы на стене, зона смены не учитывается
		start := timeutil.Naive(s.PlannedStart.Time)
		if start.Before(from) || !start.Before(to) {
			continue
		}
		minutes += s.DurationMinutes()
	}

	exact := decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
	hours := exact.Round(1)

	return models.WeeklyStat{
		UserID:     user.ID,
		WeekStart:  from,
		Minutes:    minutes,
		Hours:      hours,
		Cost:       exact.Mul(user.Rate()).Round(0),
		IsOvertime: hours.GreaterThan(overtimeThreshold),
	}
}

// ComputeTeamStats - статистика по каждому сотруднику в порядке users
func ComputeTeamStats(shifts []models.Shift, users []models.User, weekStart time.Time) []models.WeeklyStat {
	stats := make([]models.WeeklyStat, 0, len(users))
	for _, u := range users {
		stats = append(stats, ComputeWeeklyStats(shifts, u, weekStart))
	}
	return stats
}

// TeamTotals - сумма часов и стоимости по команде
func TeamTotals(stats []models.WeeklyStat) (hours, cost decimal.Decimal) {
	hours, cost = decimal.Zero, decimal.Zero
	for _, s := range stats {
		hours = hours.Add(s.Hours)
		cost = cost.Add(s.Cost)
	}
	return hours, cost
}
