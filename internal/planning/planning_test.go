package planning

import (
	"testing"
	"time"

	"planning-bot/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func workShift(userID uint, start, end time.Time) models.Shift {
	return models.Shift{
		UserID:       userID,
		PlannedStart: models.NewLocalTime(start),
		PlannedEnd:   models.NewLocalTime(end),
		Type:         models.ShiftWork,
	}
}

func TestValidateShiftWork(t *testing.T) {
	start := at(2024, 3, 4, 9, 0)

	t.Run("equal timestamps", func(t *testing.T) {
		_, err := ValidateShift(workShift(1, start, start))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := ValidateShift(workShift(1, start, start.Add(-time.Hour)))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("missing end", func(t *testing.T) {
		s := workShift(1, start, start)
		s.PlannedEnd = models.LocalTime{}
		_, err := ValidateShift(s)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("quantity is dropped", func(t *testing.T) {
		s := workShift(1, start, start.Add(8*time.Hour))
		s.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(1))

		got, err := ValidateShift(s)
		require.NoError(t, err)
		assert.False(t, got.Quantity.Valid)
		assert.True(t, s.Quantity.Valid, "input must not be mutated")
	})
}

func TestValidateShiftAbsence(t *testing.T) {
	draft := NewAbsenceDraft(3, models.ShiftSick, decimal.NullDecimal{}, "Maladie", at(2024, 3, 4, 0, 0))

	got, err := ValidateDraft(draft)
	require.NoError(t, err)
	assert.False(t, got.Quantity.Valid)
	assert.Equal(t, "2024-03-04T09:00:00", got.PlannedStart.String())
	assert.Equal(t, "2024-03-04T17:00:00", got.PlannedEnd.String())

	draft.Quantity = decimal.NewNullDecimal(decimal.RequireFromString("0.5"))
	got, err = ValidateDraft(draft)
	require.NoError(t, err)
	assert.Equal(t, "0.5", got.Quantity.Decimal.String())

	draft.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(0))
	_, err = ValidateDraft(draft)
	assert.NoError(t, err)

	draft.Quantity = decimal.NewNullDecimal(decimal.NewFromInt(-1))
	_, err = ValidateDraft(draft)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestValidateShiftUnknownType(t *testing.T) {
	s := workShift(1, at(2024, 3, 4, 9, 0), at(2024, 3, 4, 17, 0))
	s.Type = "holiday"

	_, err := ValidateShift(s)
	assert.ErrorIs(t, err, ErrInvalidShiftType)
	assert.True(t, IsValidationError(err))
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity("")
	require.NoError(t, err)
	assert.False(t, q.Valid)

	q, err = ParseQuantity(" 0,5 ")
	require.NoError(t, err)
	assert.True(t, q.Valid)
	assert.True(t, q.Decimal.Equal(decimal.RequireFromString("0.5")))

	_, err = ParseQuantity("-1")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ParseQuantity("half")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestValidateUser(t *testing.T) {
	u := models.User{Email: "anna@example.com", FullName: "Anna", Role: models.RoleEmployee}
	assert.NoError(t, ValidateUser(u))

	u.HourlyRate = decimal.NewNullDecimal(decimal.NewFromInt(-5))
	assert.ErrorIs(t, ValidateUser(u), ErrInvalidUser)

	u.HourlyRate = decimal.NullDecimal{}
	u.Email = "not-an-email"
	assert.ErrorIs(t, ValidateUser(u), ErrInvalidUser)

	u.Email = "anna@example.com"
	u.Role = "owner"
	assert.ErrorIs(t, ValidateUser(u), ErrInvalidUser)
}

func TestDraftFromShift(t *testing.T) {
	work := workShift(2, at(2024, 3, 4, 9, 0), at(2024, 3, 4, 17, 0))
	work.Position = "Bar"

	d := DraftFromShift(work)
	wd, ok := d.(WorkDraft)
	require.True(t, ok)
	assert.Equal(t, "Bar", wd.Position)
	assert.Equal(t, at(2024, 3, 4, 0, 0), d.Day())
	assert.Equal(t, work, d.Shift())

	abs := NewAbsenceDraft(2, models.ShiftRTT, decimal.NullDecimal{}, "RTT", at(2024, 3, 5, 0, 0)).Shift()
	_, ok = DraftFromShift(abs).(AbsenceDraft)
	assert.True(t, ok)
}
