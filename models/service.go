package models

import (
	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/apperr"
)

const (
	MinServiceDuration = 15
	MaxServiceDuration = 480
)

// Service is a bookable offering owned by a provider. Duration is in
// minutes; end times of appointments are derived from it at booking
// time. Services are soft-deleted (IsActive=false) so historical
// appointments keep a valid reference.
type Service struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
	ProviderID  uint    `json:"provider_id" gorm:"index"`
	Provider    User    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.Duration < MinServiceDuration || s.Duration > MaxServiceDuration {
		return apperr.Validation("duration must be between %d and %d minutes", MinServiceDuration, MaxServiceDuration)
	}
	if s.Price < 0 {
		return apperr.Validation("price must not be negative")
	}
	return nil
}
