package models

import (
	"fmt"

	"planning-bot/pkg/timeutil"

	"github.com/shopspring/decimal"
)

type ShiftType string

// Типы смен
const (
	ShiftWork     ShiftType = "work"     // Рабочая смена
	ShiftVacation ShiftType = "vacation" // Оплачиваемый отпуск
	ShiftRTT      ShiftType = "rtt"      // Отгул за переработку
	ShiftSick     ShiftType = "sick"     // Больничный
	ShiftUnpaid   ShiftType = "unpaid"   // За свой счет
	ShiftOther    ShiftType = "other"
)

// ShiftTypes - все известные типы в порядке отображения
var ShiftTypes = []ShiftType{ShiftWork, ShiftVacation, ShiftRTT, ShiftSick, ShiftUnpaid, ShiftOther}

// AbsenceTypes - типы отсутствий
var AbsenceTypes = []ShiftType{ShiftVacation, ShiftRTT, ShiftSick, ShiftUnpaid, ShiftOther}

// IsValid проверяет, что тип известен
func (t ShiftType) IsValid() bool {
	switch t {
	case ShiftWork, ShiftVacation, ShiftRTT, ShiftSick, ShiftUnpaid, ShiftOther:
		return true
	}
	return false
}

// IsAbsence - любой тип кроме рабочей смены
func (t ShiftType) IsAbsence() bool {
	return t.IsValid() && t != ShiftWork
}

// Title - название типа для пользователя
func (t ShiftType) Title() string {
	switch t {
	case ShiftWork:
		return "Смена"
	case ShiftVacation:
		return "Отпуск"
	case ShiftRTT:
		return "RTT"
	case ShiftSick:
		return "Больничный"
	case ShiftUnpaid:
		return "За свой счет"
	case ShiftOther:
		return "Отсутствие"
	}
	return string(t)
}

type Shift struct {
	ID           uint                `gorm:"primarykey" json:"id,omitempty"`
	UserID       uint                `gorm:"not null;index" json:"user_id"`
	PlannedStart LocalTime           `gorm:"not null;index" json:"planned_start"`
	PlannedEnd   LocalTime           `gorm:"not null" json:"planned_end"`
	Position     string              `json:"position"`
	Type         ShiftType           `gorm:"type:varchar(20);not null;default:'work'" json:"type"`
	Quantity     decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"quantity"`
}

func (Shift) TableName() string {
	return "shifts"
}

// IsWork проверяет, является ли запись рабочей сменой
func (s *Shift) IsWork() bool {
	return s.Type == ShiftWork
}

// DurationMinutes - плановая длительность в минутах
func (s *Shift) DurationMinutes() int {
	return timeutil.DurationMinutes(s.PlannedStart.Time, s.PlannedEnd.Time)
}

// Duration возвращает продолжительность смены как строку
func (s *Shift) Duration() string {
	minutes := s.DurationMinutes()
	if minutes <= 0 {
		return "0ч"
	}

	hours := minutes / 60
	minutes %= 60
	if minutes == 0 {
		return fmt.Sprintf("%dч", hours)
	}
	return fmt.Sprintf("%dч %dм", hours, minutes)
}

// FormatTime форматирует смену для отображения
func (s *Shift) FormatTime() string {
	if !s.IsWork() {
		label := s.Type.Title()
		if s.Position != "" {
			label = s.Position
		}
		if s.Quantity.Valid {
			return fmt.Sprintf("🌴 %s (%s)", label, s.Quantity.Decimal.String())
		}
		return "🌴 " + label
	}

	text := fmt.Sprintf("⏰ %s-%s",
		s.PlannedStart.Format(timeutil.ClockLayout),
		s.PlannedEnd.Format(timeutil.ClockLayout))
	if s.Position != "" {
		text += " " + s.Position
	}
	return text
}
