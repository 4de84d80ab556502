package planning

import (
	"testing"
	"time"

	"planning-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func morningTemplate() models.ShiftTemplate {
	return models.ShiftTemplate{
		ID:              1,
		EstablishmentID: 1,
		Name:            "Matin",
		StartTime:       "09:00",
		EndTime:         "17:30",
		Position:        "Serveur",
		ApplicableDays:  []int{0, 1, 2, 3, 4},
		BreakType:       models.BreakFlexible,
	}
}

func TestApplyTemplate(t *testing.T) {
	tpl := morningTemplate()

	// Воскресенье не входит в applicable_days, но проекция разрешена
	for _, date := range []time.Time{at(2024, 3, 4, 0, 0), at(2024, 3, 10, 13, 45)} {
		draft, err := ApplyTemplate(tpl, date)
		require.NoError(t, err)

		s := draft.Shift()
		assert.Equal(t, models.ShiftWork, s.Type)
		assert.False(t, s.Quantity.Valid)
		assert.Equal(t, "Serveur", s.Position)
		assert.Equal(t, at(date.Year(), date.Month(), date.Day(), 9, 0), s.PlannedStart.Time)
		assert.Equal(t, at(date.Year(), date.Month(), date.Day(), 17, 30), s.PlannedEnd.Time)

		_, err = ValidateShift(s)
		assert.NoError(t, err)
	}

	assert.True(t, IsApplicableOn(tpl, at(2024, 3, 4, 0, 0)))
	assert.False(t, IsApplicableOn(tpl, at(2024, 3, 10, 0, 0)))
}

func TestApplyTemplateMalformedClock(t *testing.T) {
	tpl := morningTemplate()
	tpl.EndTime = "5pm"

	_, err := ApplyTemplate(tpl, at(2024, 3, 4, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestValidateTemplate(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tpl := morningTemplate()
		tpl.BreakType = ""
		tpl.ApplicableDays = nil

		got, err := ValidateTemplate(tpl)
		require.NoError(t, err)
		assert.Equal(t, models.BreakFlexible, got.BreakType)
		assert.Equal(t, AllDays, got.ApplicableDays)
	})

	t.Run("days sorted and deduplicated", func(t *testing.T) {
		tpl := morningTemplate()
		tpl.ApplicableDays = []int{4, 0, 4}

		got, err := ValidateTemplate(tpl)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 4}, got.ApplicableDays)
		assert.Equal(t, []int{4, 0, 4}, tpl.ApplicableDays)
	})

	t.Run("rigid with windows", func(t *testing.T) {
		tpl := morningTemplate()
		tpl.BreakType = models.BreakRigid
		tpl.BreakTimes = []models.BreakWindow{{Start: "12:00", End: "12:30"}, {Start: "15:00", End: "15:15"}}

		got, err := ValidateTemplate(tpl)
		require.NoError(t, err)
		assert.Equal(t, 45, got.BreakMinutes())
	})

	invalid := []struct {
		name   string
		modify func(*models.ShiftTemplate)
	}{
		{"missing name", func(t *models.ShiftTemplate) { t.Name = "" }},
		{"bad clock", func(t *models.ShiftTemplate) { t.StartTime = "9h" }},
		{"overnight", func(t *models.ShiftTemplate) { t.StartTime, t.EndTime = "22:00", "06:00" }},
		{"day out of range", func(t *models.ShiftTemplate) { t.ApplicableDays = []int{7} }},
		{"negative break", func(t *models.ShiftTemplate) { t.BreakDurationMinutes = -10 }},
		{"unknown break type", func(t *models.ShiftTemplate) { t.BreakType = "long" }},
		{"flexible with windows", func(t *models.ShiftTemplate) {
			t.BreakTimes = []models.BreakWindow{{Start: "12:00", End: "12:30"}}
		}},
		{"rigid with duration", func(t *models.ShiftTemplate) {
			t.BreakType = models.BreakRigid
			t.BreakDurationMinutes = 30
		}},
		{"rigid window reversed", func(t *models.ShiftTemplate) {
			t.BreakType = models.BreakRigid
			t.BreakTimes = []models.BreakWindow{{Start: "13:00", End: "12:30"}}
		}},
		{"rigid windows overlap", func(t *models.ShiftTemplate) {
			t.BreakType = models.BreakRigid
			t.BreakTimes = []models.BreakWindow{{Start: "12:00", End: "13:00"}, {Start: "12:30", End: "12:45"}}
		}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			tpl := morningTemplate()
			tt.modify(&tpl)
			_, err := ValidateTemplate(tpl)
			assert.ErrorIs(t, err, ErrInvalidTemplate)
		})
	}
}

func TestApplicableDaysLabel(t *testing.T) {
	assert.Equal(t, "Пн Вт Ср Чт Пт", ApplicableDaysLabel(morningTemplate()))
	assert.Equal(t, "Пн Вт Ср Чт Пт Сб Вс", ApplicableDaysLabel(models.ShiftTemplate{}))
}
