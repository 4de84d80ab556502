package planning

import (
	"time"

	"planning-bot/internal/models"
	"planning-bot/pkg/timeutil"

	"github.com/shopspring/decimal"
)

// Окно по умолчанию для отсутствий: бэкенд требует непустые отметки времени
var (
	AbsenceWindowStart = timeutil.Clock{Hour: 9}
	AbsenceWindowEnd   = timeutil.Clock{Hour: 17}
)

// ShiftDraft - смена, еще не отправленная в бэкенд: WorkDraft или AbsenceDraft
type ShiftDraft interface {
	// Shift - полезная нагрузка для создания или замены смены
	Shift() models.Shift
	// Day - календарный день смены
	Day() time.Time

	isShiftDraft()
}

// WorkDraft - рабочая смена, количество не передается
type WorkDraft struct {
	UserID   uint
	Start    time.Time
	End      time.Time
	Position string
}

func (d WorkDraft) Shift() models.Shift {
	return models.Shift{
		UserID:       d.UserID,
		PlannedStart: models.NewLocalTime(d.Start),
		PlannedEnd:   models.NewLocalTime(d.End),
		Position:     d.Position,
		Type:         models.ShiftWork,
	}
}

func (d WorkDraft) Day() time.Time {
	return timeutil.StartOfDay(timeutil.Naive(d.Start))
}

func (WorkDraft) isShiftDraft() {}

// AbsenceDraft - отсутствие на один день
type AbsenceDraft struct {
	UserID   uint
	Type     models.ShiftType
	Quantity decimal.NullDecimal
	Position string
	Start    time.Time
	End      time.Time
}

// NewAbsenceDraft - отсутствие на день day в окне 09:00-17:00
func NewAbsenceDraft(userID uint, absenceType models.ShiftType, quantity decimal.NullDecimal, position string, day time.Time) AbsenceDraft {
	day = timeutil.StartOfDay(timeutil.Naive(day))
	return AbsenceDraft{
		UserID:   userID,
		Type:     absenceType,
		Quantity: quantity,
		Position: position,
		Start:    timeutil.At(day, AbsenceWindowStart),
		End:      timeutil.At(day, AbsenceWindowEnd),
	}
}

func (d AbsenceDraft) Shift() models.Shift {
	return models.Shift{
		UserID:       d.UserID,
		PlannedStart: models.NewLocalTime(d.Start),
		PlannedEnd:   models.NewLocalTime(d.End),
		Position:     d.Position,
		Type:         d.Type,
		Quantity:     d.Quantity,
	}
}

func (d AbsenceDraft) Day() time.Time {
	return timeutil.StartOfDay(timeutil.Naive(d.Start))
}

func (AbsenceDraft) isShiftDraft() {}

// DraftFromShift - черновик для редактирования существующей смены
func DraftFromShift(s models.Shift) ShiftDraft {
	if s.IsWork() {
		return WorkDraft{
			UserID:   s.UserID,
			Start:    s.PlannedStart.Time,
			End:      s.PlannedEnd.Time,
			Position: s.Position,
		}
	}
	return AbsenceDraft{
		UserID:   s.UserID,
		Type:     s.Type,
		Quantity: s.Quantity,
		Position: s.Position,
		Start:    s.PlannedStart.Time,
		End:      s.PlannedEnd.Time,
	}
}
