package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"planning-bot/pkg/timeutil"

	"github.com/shopspring/decimal"
)

func init() {
	// Бэкенд ждет числа в JSON, а не строки
	decimal.MarshalJSONWithoutQuotes = true
}

// LocalTime - метка времени без часового пояса (YYYY-MM-DDTHH:MM:SS)
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: timeutil.Naive(t)}
}

func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	return timeutil.FormatLocal(t.Time)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(timeutil.FormatLocal(t.Time))
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := timeutil.ParseLocal(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Value хранит метку строкой, как ее хранит бэкенд
func (t LocalTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return timeutil.FormatLocal(t.Time), nil
}

func (t *LocalTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		t.Time = timeutil.Naive(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", value)
	}
}

func (t *LocalTime) scanString(s string) error {
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := timeutil.ParseLocal(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// GormDataType - колонка строковая
func (LocalTime) GormDataType() string {
	return "string"
}
