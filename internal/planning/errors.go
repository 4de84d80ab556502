package planning

import (
	"errors"

	"planning-bot/pkg/timeutil"
)

// Ошибки проверки данных. Возвращаются до любого обращения к бэкенду
var (
	ErrInvalidRange     = timeutil.ErrInvalidRange
	ErrInvalidTimeRange = errors.New("invalid time range: shift end must be after start")
	ErrInvalidQuantity  = errors.New("invalid quantity: must be empty or a non-negative number")
	ErrInvalidShiftType = errors.New("invalid shift type")
	ErrInvalidTemplate  = errors.New("invalid shift template")
	ErrInvalidUser      = errors.New("invalid user")
)

// IsValidationError - ошибка относится к проверке ввода, а не к бэкенду
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidShiftType) ||
		errors.Is(err, ErrInvalidTemplate) ||
		errors.Is(err, ErrInvalidUser)
}
