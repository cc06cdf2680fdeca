package models

import (
	"time"
)

// Role determines authorization for provider-only operations. It is
// fixed at registration and never changes afterwards.
type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleProvider
}

type User struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name"`
	Email            string         `json:"email" gorm:"unique"`
	Password         string         `json:"password,omitempty"`
	Role             Role           `json:"role" gorm:"type:varchar(16);default:'user'"`
	Phone            string         `json:"phone"`
	ProvidedServices []Service      `json:"provided_services,omitempty" gorm:"foreignKey:ProviderID"`
	Appointments     []Appointment  `json:"appointments,omitempty" gorm:"foreignKey:UserID"`
	Availability     []Availability `json:"availability,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
