package models

type Establishment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"not null;index" json:"name"`
	Address string `json:"address,omitempty"`
}

func (Establishment) TableName() string {
	return "establishments"
}
