package export

import (
	"fmt"
	"io"
	"strings"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/pkg/timeutil"

	"github.com/xuri/excelize/v2"
)

const (
	gridSheet   = "Планирование"
	shiftsSheet = "Смены"
)

var weekdayNames = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// WeekWorkbook - недельный график в формате xlsx
type WeekWorkbook struct {
	file *excelize.File
}

// NewWeekWorkbook строит книгу из двух листов: сетка по сотрудникам и список смен
func NewWeekWorkbook(grid planning.WeekGrid, title string) (*WeekWorkbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", gridSheet); err != nil {
		f.Close()
		return nil, err
	}

	wb := &WeekWorkbook{file: f}
	if err := wb.writeGrid(grid, title); err != nil {
		f.Close()
		return nil, fmt.Errorf("write grid sheet: %w", err)
	}
	if err := wb.writeShifts(grid); err != nil {
		f.Close()
		return nil, fmt.Errorf("write shifts sheet: %w", err)
	}
	return wb, nil
}

func (wb *WeekWorkbook) writeGrid(grid planning.WeekGrid, title string) error {
	f := wb.file

	if err := f.SetCellValue(gridSheet, "A1", fmt.Sprintf("%s: неделя с %s", title, grid.WeekStart.Format("02.01.2006"))); err != nil {
		return err
	}

	header := []any{"Сотрудник"}
	for i, d := range grid.Days {
		header = append(header, fmt.Sprintf("%s %s", weekdayNames[i%7], d.Format("02.01")))
	}
	header = append(header, "Часы", "Стоимость", "Сверхурочные")
	if err := f.SetSheetRow(gridSheet, "A3", &header); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err == nil {
		end, _ := excelize.CoordinatesToCellName(len(header), 3)
		_ = f.SetCellStyle(gridSheet, "A3", end, headerStyle)
	}

	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	overtimeStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#C00000"},
	})

	for i, row := range grid.Rows {
		rowNum := i + 4
		values := []any{row.User.FullName}
		for _, shifts := range row.Days {
			values = append(values, cellText(shifts))
		}
		hours, _ := row.Stats.Hours.Float64()
		cost, _ := row.Stats.Cost.Float64()
		overtime := ""
		if row.Stats.IsOvertime {
			overtime = "да"
		}
		values = append(values, hours, cost, overtime)

		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(gridSheet, start, &values); err != nil {
			return err
		}

		first, _ := excelize.CoordinatesToCellName(2, rowNum)
		last, _ := excelize.CoordinatesToCellName(8, rowNum)
		_ = f.SetCellStyle(gridSheet, first, last, wrapStyle)
		if row.Stats.IsOvertime {
			hoursCell, _ := excelize.CoordinatesToCellName(9, rowNum)
			_ = f.SetCellStyle(gridSheet, hoursCell, hoursCell, overtimeStyle)
		}
	}

	hoursTotal, costTotal := planning.TeamTotals(grid.Stats())
	totalRow := len(grid.Rows) + 4
	hoursCell, _ := excelize.CoordinatesToCellName(9, totalRow)
	costCell, _ := excelize.CoordinatesToCellName(10, totalRow)
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	h, _ := hoursTotal.Float64()
	c, _ := costTotal.Float64()
	if err := f.SetCellValue(gridSheet, labelCell, "Итого"); err != nil {
		return err
	}
	if err := f.SetCellValue(gridSheet, hoursCell, h); err != nil {
		return err
	}
	if err := f.SetCellValue(gridSheet, costCell, c); err != nil {
		return err
	}

	_ = f.SetColWidth(gridSheet, "A", "A", 24)
	_ = f.SetColWidth(gridSheet, "B", "H", 18)
	return nil
}

func (wb *WeekWorkbook) writeShifts(grid planning.WeekGrid) error {
	f := wb.file
	if _, err := f.NewSheet(shiftsSheet); err != nil {
		return err
	}

	header := []any{"Дата", "Сотрудник", "Тип", "Начало", "Конец", "Должность", "Количество", "Минуты"}
	if err := f.SetSheetRow(shiftsSheet, "A1", &header); err != nil {
		return err
	}

	rowNum := 2
	for _, row := range grid.Rows {
		for d, shifts := range row.Days {
			for _, s := range shifts {
				quantity := ""
				if s.Quantity.Valid {
					quantity = s.Quantity.Decimal.String()
				}
				minutes := 0
				if s.IsWork() {
					minutes = s.DurationMinutes()
				}

				values := []any{
					grid.Days[d].Format(timeutil.DateLayout),
					row.User.FullName,
					string(s.Type),
					s.PlannedStart.Format(timeutil.ClockLayout),
					s.PlannedEnd.Format(timeutil.ClockLayout),
					s.Position,
					quantity,
					minutes,
				}
				cell, _ := excelize.CoordinatesToCellName(1, rowNum)
				if err := f.SetSheetRow(shiftsSheet, cell, &values); err != nil {
					return err
				}
				rowNum++
			}
		}
	}
	return nil
}

func cellText(shifts []models.Shift) string {
	lines := make([]string, 0, len(shifts))
	for _, s := range shifts {
		if s.IsWork() {
			line := s.PlannedStart.Format(timeutil.ClockLayout) + "-" + s.PlannedEnd.Format(timeutil.ClockLayout)
			if s.Position != "" {
				line += " " + s.Position
			}
			lines = append(lines, line)
			continue
		}
		label := s.Position
		if label == "" {
			label = s.Type.Title()
		}
		if s.Quantity.Valid {
			label += " (" + s.Quantity.Decimal.String() + ")"
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}

// Write пишет книгу в w
func (wb *WeekWorkbook) Write(w io.Writer) error {
	return wb.file.Write(w)
}

// SaveAs сохраняет книгу на диск
func (wb *WeekWorkbook) SaveAs(path string) error {
	return wb.file.SaveAs(path)
}

func (wb *WeekWorkbook) Close() error {
	return wb.file.Close()
}
