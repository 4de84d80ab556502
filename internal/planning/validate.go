package planning

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"planning-bot/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal как число, чтобы работали теги gte/min
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch v := field.Interface().(type) {
		case decimal.Decimal:
			f, _ := v.Float64()
			return f
		case decimal.NullDecimal:
			if !v.Valid {
				return nil
			}
			f, _ := v.Decimal.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{}, decimal.NullDecimal{})
}

// ValidateShift проверяет смену перед созданием или заменой и возвращает нормализованную копию.
// Пересечения смен не проверяются
func ValidateShift(candidate models.Shift) (models.Shift, error) {
	shift := candidate

	switch {
	case shift.Type == models.ShiftWork:
		if shift.PlannedStart.IsZero() || shift.PlannedEnd.IsZero() {
			return shift, fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
		}
		if !shift.PlannedEnd.After(shift.PlannedStart.Time) {
			return shift, fmt.Errorf("%w: %s >= %s", ErrInvalidTimeRange, shift.PlannedStart, shift.PlannedEnd)
		}
		shift.Quantity = decimal.NullDecimal{}

	case shift.Type.IsAbsence():
		if shift.PlannedStart.IsZero() || shift.PlannedEnd.IsZero() {
			return shift, fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
		}
		if shift.Quantity.Valid && shift.Quantity.Decimal.IsNegative() {
			return shift, fmt.Errorf("%w: %s", ErrInvalidQuantity, shift.Quantity.Decimal)
		}

	default:
		return shift, fmt.Errorf("%w: %q", ErrInvalidShiftType, shift.Type)
	}

	return shift, nil
}

// ValidateDraft - ValidateShift для черновика
func ValidateDraft(d ShiftDraft) (models.Shift, error) {
	return ValidateShift(d.Shift())
}

// ParseQuantity разбирает количество из формы: пустая строка означает "не указано"
func ParseQuantity(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}

	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	if qty.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %s", ErrInvalidQuantity, qty)
	}
	return decimal.NewNullDecimal(qty), nil
}

// ValidateUser проверяет данные нового сотрудника
func ValidateUser(u models.User) error {
	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUser, describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
