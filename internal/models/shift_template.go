package models

import (
	"slices"
	"time"

	"planning-bot/pkg/timeutil"
)

type BreakType string

const (
	BreakFlexible BreakType = "flexible" // Перерыв заданной длительности в любое время
	BreakRigid    BreakType = "rigid"    // Перерыв в фиксированные окна
)

// BreakWindow - окно фиксированного перерыва
type BreakWindow struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

type ShiftTemplate struct {
	ID                   uint          `gorm:"primaryKey" json:"id,omitempty"`
	EstablishmentID      uint          `gorm:"not null;index" json:"establishment_id"`
	Name                 string        `gorm:"not null" json:"name" validate:"required"`
	StartTime            string        `gorm:"type:varchar(5);not null" json:"start_time" validate:"required,datetime=15:04"`
	EndTime              string        `gorm:"type:varchar(5);not null" json:"end_time" validate:"required,datetime=15:04"`
	Position             string        `json:"position" validate:"required"`
	ApplicableDays       []int         `gorm:"serializer:json" json:"applicable_days" validate:"omitempty,dive,min=0,max=6"`
	BreakType            BreakType     `gorm:"type:varchar(20);default:'flexible'" json:"break_type" validate:"omitempty,oneof=flexible rigid"`
	BreakDurationMinutes int           `gorm:"default:0" json:"break_duration_minutes" validate:"min=0"`
	BreakTimes           []BreakWindow `gorm:"serializer:json" json:"break_times" validate:"dive"`
	BreakPaid            bool          `gorm:"default:false" json:"break_paid"`
}

func (ShiftTemplate) TableName() string {
	return "shift_templates"
}

// EffectiveBreakType - пустой тип считается гибким
func (t *ShiftTemplate) EffectiveBreakType() BreakType {
	if t.BreakType == "" {
		return BreakFlexible
	}
	return t.BreakType
}

// AppliesOn - отмечен ли день недели в шаблоне; пустой список означает все дни
func (t *ShiftTemplate) AppliesOn(day time.Time) bool {
	if len(t.ApplicableDays) == 0 {
		return true
	}
	return slices.Contains(t.ApplicableDays, timeutil.WeekdayIndex(day))
}

// BreakMinutes - плановая длительность перерывов, только для отображения
func (t *ShiftTemplate) BreakMinutes() int {
	if t.EffectiveBreakType() == BreakFlexible {
		return t.BreakDurationMinutes
	}

	total := 0
	for _, w := range t.BreakTimes {
		start, err := timeutil.ParseClock(w.Start)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseClock(w.End)
		if err != nil {
			continue
		}
		if end.Minutes() > start.Minutes() {
			total += end.Minutes() - start.Minutes()
		}
	}
	return total
}
