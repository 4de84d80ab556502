package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyStat - недельная статистика сотрудника, вычисляется и не хранится
type WeeklyStat struct {
	UserID     uint            `json:"user_id"`
	WeekStart  time.Time       `json:"week_start"`
	Minutes    int             `json:"minutes"`
	Hours      decimal.Decimal `json:"hours"`
	Cost       decimal.Decimal `json:"cost"`
	IsOvertime bool            `json:"is_overtime"`
}

// HoursLabel - часы с одним знаком после запятой ("8.0")
func (s WeeklyStat) HoursLabel() string {
	return s.Hours.StringFixed(1)
}

// CostLabel - стоимость в целых единицах валюты
func (s WeeklyStat) CostLabel() string {
	return s.Cost.StringFixed(0)
}
