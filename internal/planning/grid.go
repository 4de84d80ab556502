package planning

import (
	"slices"
	"time"

	"planning-bot/internal/models"
	"planning-bot/pkg/timeutil"
)

// GridRow - строка недельного графика: сотрудник, семь дней и итог недели
type GridRow struct {
	User  models.User
	Days  [7][]models.Shift
	Stats models.WeeklyStat
}

// WeekGrid - недельный график заведения
type WeekGrid struct {
	WeekStart time.Time
	Days      []time.Time
	Rows      []GridRow
}

// BuildWeekGrid раскладывает смены снимка по сотрудникам и дням недели
func BuildWeekGrid(snap Snapshot, weekStart time.Time) WeekGrid {
	from := timeutil.StartOfDay(timeutil.Naive(weekStart))
	grid := WeekGrid{
		WeekStart: from,
		Days:      timeutil.WeekDays(from),
		Rows:      make([]GridRow, 0, len(snap.Users)),
	}

	index := make(map[uint]int, len(snap.Users))
	for i, u := range snap.Users {
		index[u.ID] = i
		grid.Rows = append(grid.Rows, GridRow{
			User:  u,
			Stats: ComputeWeeklyStats(snap.Shifts, u, from),
		})
	}

	to := from.AddDate(0, 0, 7)
	for _, s := range snap.Shifts {
		row, ok := index[s.UserID]
		start := timeutil.Naive(s.PlannedStart.Time)
		if !ok || start.Before(from) || !start.Before(to) {
			continue
		}
		day := int(timeutil.StartOfDay(start).Sub(from).Hours() / 24)
		grid.Rows[row].Days[day] = append(grid.Rows[row].Days[day], s)
	}

	for i := range grid.Rows {
		for d := range grid.Rows[i].Days {
			slices.SortStableFunc(grid.Rows[i].Days[d], func(a, b models.Shift) int {
				return timeutil.Naive(a.PlannedStart.Time).Compare(timeutil.Naive(b.PlannedStart.Time))
			})
		}
	}

	return grid
}

// Stats - статистика всех строк графика
func (g WeekGrid) Stats() []models.WeeklyStat {
	stats := make([]models.WeeklyStat, len(g.Rows))
	for i, r := range g.Rows {
		stats[i] = r.Stats
	}
	return stats
}
