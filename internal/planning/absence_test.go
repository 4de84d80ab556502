package planning

import (
	"testing"

	"planning-bot/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandAbsenceRange(t *testing.T) {
	one := decimal.NewNullDecimal(decimal.NewFromInt(1))

	drafts, err := ExpandAbsenceRange(7, models.ShiftSick, one, "Maladie", at(2024, 3, 4, 0, 0), at(2024, 3, 6, 0, 0))
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	for i, date := range []string{"2024-03-04", "2024-03-05", "2024-03-06"} {
		s := drafts[i].Shift()
		assert.Equal(t, uint(7), s.UserID)
		assert.Equal(t, models.ShiftSick, s.Type)
		assert.True(t, s.Quantity.Decimal.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, "Maladie", s.Position)
		assert.Equal(t, date+"T09:00:00", s.PlannedStart.String())
		assert.Equal(t, date+"T17:00:00", s.PlannedEnd.String())
	}
}

func TestExpandAbsenceRangeSingleDay(t *testing.T) {
	drafts, err := ExpandAbsenceRange(1, models.ShiftVacation, decimal.NullDecimal{}, "Congé Payé", at(2024, 3, 4, 0, 0), at(2024, 3, 4, 0, 0))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, at(2024, 3, 4, 0, 0), drafts[0].Day())
}

func TestExpandAbsenceRangeErrors(t *testing.T) {
	_, err := ExpandAbsenceRange(1, models.ShiftSick, decimal.NullDecimal{}, "", at(2024, 3, 6, 0, 0), at(2024, 3, 4, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ExpandAbsenceRange(1, models.ShiftWork, decimal.NullDecimal{}, "", at(2024, 3, 4, 0, 0), at(2024, 3, 5, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidShiftType)

	_, err = ExpandAbsenceRange(1, models.ShiftSick, decimal.NewNullDecimal(decimal.NewFromInt(-1)), "", at(2024, 3, 4, 0, 0), at(2024, 3, 5, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestDefaultAbsenceLabel(t *testing.T) {
	assert.Equal(t, "Congé Payé", DefaultAbsenceLabel(models.ShiftVacation))
	assert.Equal(t, "Maladie", DefaultAbsenceLabel(models.ShiftSick))
	assert.Equal(t, "Absence", DefaultAbsenceLabel(models.ShiftWork))
}
