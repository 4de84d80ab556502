package planning

import (
	"fmt"
	"time"

	"planning-bot/internal/models"
	"planning-bot/pkg/timeutil"

	"github.com/shopspring/decimal"
)

var defaultAbsenceLabels = map[models.ShiftType]string{
	models.ShiftVacation: "Congé Payé",
	models.ShiftRTT:      "RTT",
	models.ShiftSick:     "Maladie",
	models.ShiftUnpaid:   "Sans Solde",
	models.ShiftOther:    "Absence",
}

// DefaultAbsenceLabel - подпись отсутствия, если пользователь не задал свою
func DefaultAbsenceLabel(t models.ShiftType) string {
	if label, ok := defaultAbsenceLabels[t]; ok {
		return label
	}
	return "Absence"
}

// ExpandAbsenceRange разворачивает отсутствие с start по end включительно в отдельные дни.
// Каждый день отправляется в бэкенд независимо
func ExpandAbsenceRange(userID uint, absenceType models.ShiftType, quantityPerDay decimal.NullDecimal, positionLabel string, start, end time.Time) ([]AbsenceDraft, error) {
	if !absenceType.IsAbsence() {
		return nil, fmt.Errorf("%w: %q is not an absence", ErrInvalidShiftType, absenceType)
	}
	if quantityPerDay.Valid && quantityPerDay.Decimal.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, quantityPerDay.Decimal)
	}

	days, err := timeutil.DaysBetweenInclusive(timeutil.Naive(start), timeutil.Naive(end))
	if err != nil {
		return nil, err
	}

	var drafts []AbsenceDraft
	for day := range days {
		drafts = append(drafts, NewAbsenceDraft(userID, absenceType, quantityPerDay, positionLabel, day))
	}
	return drafts, nil
}
