package config

import (
	"fmt"
	"os"

	"planning-bot/internal/models"

	"gopkg.in/yaml.v3"
)

// Settings - настройки планирования из YAML файла
type Settings struct {
	Positions     []string          `yaml:"positions"`
	AbsenceLabels map[string]string `yaml:"absence_labels"`
	// Показывать подтверждение перед удалением смены
	ConfirmDelete *bool `yaml:"confirm_delete"`
}

// LoadSettings читает файл настроек; пустой путь дает настройки по умолчанию.
// Переменные окружения вида ${VAR} подставляются до разбора
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return &Settings{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}

	for key := range s.AbsenceLabels {
		if !models.ShiftType(key).IsAbsence() {
			return nil, fmt.Errorf("absence_labels: unknown absence type %q", key)
		}
	}
	return &s, nil
}

// Labels - подписи отсутствий по типам
func (s *Settings) Labels() map[models.ShiftType]string {
	labels := make(map[models.ShiftType]string, len(s.AbsenceLabels))
	for k, v := range s.AbsenceLabels {
		labels[models.ShiftType(k)] = v
	}
	return labels
}

func (s *Settings) ShouldConfirmDelete() bool {
	return s.ConfirmDelete == nil || *s.ConfirmDelete
}
