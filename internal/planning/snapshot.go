package planning

import (
	"time"

	"planning-bot/internal/models"
)

// Snapshot - данные заведения, полученные одним обновлением.
// Принадлежит вызывающему коду и заменяется целиком при каждом обновлении
type Snapshot struct {
	EstablishmentID uint
	Users           []models.User
	Shifts          []models.Shift
	Templates       []models.ShiftTemplate
	FetchedAt       time.Time
}

func (s *Snapshot) User(id uint) (models.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Snapshot) Shift(id uint) (models.Shift, bool) {
	for _, sh := range s.Shifts {
		if sh.ID == id {
			return sh, true
		}
	}
	return models.Shift{}, false
}

func (s *Snapshot) Template(id uint) (models.ShiftTemplate, bool) {
	for _, t := range s.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return models.ShiftTemplate{}, false
}

// Stats - недельная статистика всех сотрудников снимка
func (s *Snapshot) Stats(weekStart time.Time) []models.WeeklyStat {
	return ComputeTeamStats(s.Shifts, s.Users, weekStart)
}
