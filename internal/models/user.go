package models

import "github.com/shopspring/decimal"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// IsValid проверяет, что роль известна
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	Email           string              `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	FullName        string              `gorm:"not null" json:"full_name" validate:"required"`
	Role            Role                `gorm:"type:varchar(20);default:'employee'" json:"role" validate:"omitempty,oneof=employee manager admin"`
	HourlyRate      decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"hourly_rate" validate:"omitempty,gte=0"`
	EstablishmentID uint                `gorm:"index" json:"establishment_id"`
	ManagerID       *uint               `json:"manager_id,omitempty"`
}

// TableName задает имя таблицы в БД
func (User) TableName() string {
	return "users"
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager - менеджер или администратор
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// Rate - почасовая ставка, отсутствующая ставка считается нулевой
func (u *User) Rate() decimal.Decimal {
	if !u.HourlyRate.Valid {
		return decimal.Zero
	}
	return u.HourlyRate.Decimal
}

// UserUpdate - частичное обновление профиля, пустые поля не меняются
type UserUpdate struct {
	FullName   *string          `json:"full_name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Role       *Role            `json:"role,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
}

// Apply переносит заданные поля в пользователя
func (upd UserUpdate) Apply(u *User) {
	if upd.FullName != nil {
		u.FullName = *upd.FullName
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.HourlyRate != nil {
		u.HourlyRate = decimal.NewNullDecimal(*upd.HourlyRate)
	}
}
