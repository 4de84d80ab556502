package handler

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"planning-bot/internal/models"
	"planning-bot/internal/planning"
	"planning-bot/pkg/timeutil"

	"github.com/shopspring/decimal"
)

var errUsage = errors.New("wrong number of arguments")

// Данные inline кнопок
const (
	callbackUse           = "use:"
	callbackWeek          = "week:"
	callbackDeleteShift   = "confirm_delete_shift:"
	callbackCancelDelete  = "cancel_delete_shift"
	callbackRetryAbsence  = "retry_absence"
	callbackCancelAbsence = "cancel_retry_absence"
)

var weekdayAliases = map[string]int{
	"пн": 0, "вт": 1, "ср": 2, "чт": 3, "пт": 4, "сб": 5, "вс": 6,
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

var absenceAliases = map[string]models.ShiftType{
	"vacation":   models.ShiftVacation,
	"отпуск":     models.ShiftVacation,
	"rtt":        models.ShiftRTT,
	"отгул":      models.ShiftRTT,
	"sick":       models.ShiftSick,
	"больничный": models.ShiftSick,
	"unpaid":     models.ShiftUnpaid,
	"other":      models.ShiftOther,
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(id), nil
}

// parseOptionalDate - пустая строка означает сегодня
func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return timeutil.Today(), nil
	}
	return timeutil.ParseDate(s)
}

// parseTimeRange - начало и конец смены в день date. Конец не раньше начала не проверяется
func parseTimeRange(date time.Time, start, end string) (time.Time, time.Time, error) {
	from, err := timeutil.ParseClock(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := timeutil.ParseClock(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return timeutil.At(date, from), timeutil.At(date, to), nil
}

// shiftArgs - аргументы /shift и /editshift: <id> <дата> HH:MM HH:MM [должность]
type shiftArgs struct {
	ID       uint
	Start    time.Time
	End      time.Time
	Position string
}

func parseShiftArgs(args string) (shiftArgs, error) {
	parts := strings.Fields(args)
	if len(parts) < 4 {
		return shiftArgs{}, errUsage
	}

	id, err := parseID(parts[0])
	if err != nil {
		return shiftArgs{}, err
	}
	date, err := timeutil.ParseDate(parts[1])
	if err != nil {
		return shiftArgs{}, err
	}
	start, end, err := parseTimeRange(date, parts[2], parts[3])
	if err != nil {
		return shiftArgs{}, err
	}

	return shiftArgs{
		ID:       id,
		Start:    start,
		End:      end,
		Position: strings.Join(parts[4:], " "),
	}, nil
}

// absenceArgs - аргументы /absence <сотрудник> <тип> <количество> <начало> [конец]
type absenceArgs struct {
	UserID   uint
	Type     models.ShiftType
	Quantity decimal.NullDecimal
	Start    time.Time
	End      time.Time
}

func parseAbsenceArgs(args string) (absenceArgs, error) {
	parts := strings.Fields(args)
	if len(parts) < 4 || len(parts) > 5 {
		return absenceArgs{}, errUsage
	}

	userID, err := parseID(parts[0])
	if err != nil {
		return absenceArgs{}, err
	}

	absenceType, ok := absenceAliases[strings.ToLower(parts[1])]
	if !ok {
		absenceType = models.ShiftType(strings.ToLower(parts[1]))
	}

	raw := parts[2]
	if raw == "-" {
		raw = ""
	}
	quantity, err := planning.ParseQuantity(raw)
	if err != nil {
		return absenceArgs{}, err
	}

	start, err := timeutil.ParseDate(parts[3])
	if err != nil {
		return absenceArgs{}, err
	}
	end := start
	if len(parts) == 5 {
		if end, err = timeutil.ParseDate(parts[4]); err != nil {
			return absenceArgs{}, err
		}
	}

	return absenceArgs{
		UserID:   userID,
		Type:     absenceType,
		Quantity: quantity,
		Start:    start,
		End:      end,
	}, nil
}

// parseTemplateArgs - /addtemplate <название> HH:MM HH:MM <должность> [дни]
func parseTemplateArgs(args string) (models.ShiftTemplate, error) {
	parts := strings.Fields(args)
	if len(parts) < 4 {
		return models.ShiftTemplate{}, errUsage
	}

	tpl := models.ShiftTemplate{
		Name:      parts[0],
		StartTime: parts[1],
		EndTime:   parts[2],
		Position:  parts[3],
	}
	if len(parts) > 4 {
		days, err := parseDays(strings.Join(parts[4:], ","))
		if err != nil {
			return models.ShiftTemplate{}, err
		}
		tpl.ApplicableDays = days
	}
	return tpl, nil
}

// parseDays - дни недели списком: "0,1,2", "пн,вт" или диапазон "пн-пт"
func parseDays(s string) ([]int, error) {
	var days []int
	for _, token := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == ',' || r == ' ' }) {
		if from, to, ok := strings.Cut(token, "-"); ok {
			a, err := parseDay(from)
			if err != nil {
				return nil, err
			}
			b, err := parseDay(to)
			if err != nil {
				return nil, err
			}
			if b < a {
				return nil, fmt.Errorf("invalid day range %q", token)
			}
			for d := a; d <= b; d++ {
				days = append(days, d)
			}
			continue
		}

		d, err := parseDay(token)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}

	slices.Sort(days)
	return slices.Compact(days), nil
}

func parseDay(s string) (int, error) {
	if d, ok := weekdayAliases[s]; ok {
		return d, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 0 || d > 6 {
		return 0, fmt.Errorf("invalid weekday %q", s)
	}
	return d, nil
}

// parseAmount - неотрицательная сумма, запятая допускается как разделитель
func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}

// parseInviteArgs - /invite <email> <роль> <ФИО>
func parseInviteArgs(args string) (models.User, error) {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		return models.User{}, errUsage
	}

	role := models.Role(strings.ToLower(parts[1]))
	if !role.IsValid() {
		return models.User{}, fmt.Errorf("unknown role %q", parts[1])
	}
	return models.User{
		Email:    parts[0],
		Role:     role,
		FullName: strings.Join(parts[2:], " "),
	}, nil
}

// parseEstablishmentArgs - /addestablishment <название>; <адрес>
func parseEstablishmentArgs(args string) (name, address string, err error) {
	name, address, _ = strings.Cut(args, ";")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", errUsage
	}
	return name, strings.TrimSpace(address), nil
}
