package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/apperr"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday

	// DateBlockDay marks rows that block one specific calendar date
	// instead of describing a weekly rule.
	DateBlockDay DayOfWeek = -1
)

// Availability holds both variants of a provider's schedule in one
// table: weekly working-hour rules (DayOfWeek 0-6, at most one per
// provider and day) and ad-hoc date blocks (DayOfWeek = DateBlockDay,
// BlockedDate set, IsBlocked forced true).
type Availability struct {
	gorm.Model
	ProviderID    uint       `json:"provider_id" gorm:"index"`
	Provider      User       `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	DayOfWeek     DayOfWeek  `json:"day_of_week"`
	StartTime     string     `json:"start_time"` // "HH:MM", 24h
	EndTime       string     `json:"end_time"`   // "HH:MM", 24h
	IsBlocked     bool       `json:"is_blocked" gorm:"default:false"`
	BlockedReason string     `json:"blocked_reason,omitempty"`
	BlockedDate   *time.Time `json:"blocked_date,omitempty"`
}

// NewWeeklyRule builds a weekly working-hours rule. Callers never set
// the day sentinel directly.
func NewWeeklyRule(providerID uint, day DayOfWeek, startTime, endTime string) Availability {
	return Availability{
		ProviderID: providerID,
		DayOfWeek:  day,
		StartTime:  startTime,
		EndTime:    endTime,
	}
}

// NewDateBlock builds a full-day block for one calendar date. The
// stored window spans the whole day, matching how blocks are compared.
func NewDateBlock(providerID uint, date time.Time, reason string) Availability {
	day := StartOfDay(date)
	return Availability{
		ProviderID:    providerID,
		DayOfWeek:     DateBlockDay,
		StartTime:     "00:00",
		EndTime:       "23:59",
		IsBlocked:     true,
		BlockedReason: reason,
		BlockedDate:   &day,
	}
}

// IsDateBlock reports whether this row blocks a specific date rather
// than describing a weekly rule.
func (a *Availability) IsDateBlock() bool {
	return a.DayOfWeek == DateBlockDay
}

func (a *Availability) BeforeSave(tx *gorm.DB) error {
	if a.IsDateBlock() {
		if a.BlockedDate == nil {
			return apperr.Validation("blocked date is required for a date block")
		}
		a.IsBlocked = true
		return nil
	}
	if a.DayOfWeek < Sunday || a.DayOfWeek > Saturday {
		return apperr.Validation("day of week must be between 0 and 6")
	}
	return nil
}

// StartOfDay zeroes the time-of-day component, the canonical form for
// appointment dates and blocked dates.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
