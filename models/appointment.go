package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/apperr"
	"github.com/bookwell/bookwell-api/utils"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type CancelledBy string

const (
	CancelledByUser     CancelledBy = "user"
	CancelledByProvider CancelledBy = "provider"
)

// Appointment is a committed reservation of one slot. Rows are never
// hard-deleted; the lifecycle moves only through UpdateStatus/Cancel.
type Appointment struct {
	gorm.Model
	BookingRef  string            `json:"booking_ref" gorm:"uniqueIndex;type:varchar(36)"`
	UserID      uint              `json:"user_id"`
	User        User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProviderID  uint              `json:"provider_id"`
	Provider    User              `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID   uint              `json:"service_id"`
	Service     Service           `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Date        time.Time         `json:"date"`       // calendar date, time-of-day zeroed
	StartTime   string            `json:"start_time"` // "HH:MM", 24h
	EndTime     string            `json:"end_time"`   // "HH:MM", derived from service duration
	Status      AppointmentStatus `json:"status" gorm:"type:varchar(16);default:'booked';index"`
	Notes       string            `json:"notes"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
	CancelledBy CancelledBy       `json:"cancelled_by,omitempty" gorm:"type:varchar(16)"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	if a.BookingRef == "" {
		a.BookingRef = uuid.NewString()
	}
	return nil
}

// CanTransition reports whether the lifecycle allows moving from the
// current status to next. Completed and cancelled are terminal.
func (a *Appointment) CanTransition(next AppointmentStatus) bool {
	if a.Status != StatusBooked {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// UpdateStatus applies a guarded transition and persists it. Cancelling
// through here records who cancelled and when.
func (a *Appointment) UpdateStatus(tx *gorm.DB, next AppointmentStatus, by CancelledBy) error {
	if !next.Valid() {
		return apperr.Validation("invalid status %q", next)
	}
	if !a.CanTransition(next) {
		return apperr.InvalidState("cannot transition from " + string(a.Status) + " to " + string(next))
	}
	a.Status = next
	if next == StatusCancelled {
		now := time.Now()
		a.CancelledAt = &now
		a.CancelledBy = by
	}
	return tx.Save(a).Error
}

// StartInstant combines the appointment date with its start time.
func (a *Appointment) StartInstant() (time.Time, error) {
	minutes, err := utils.TimeToMinutes(a.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(a.Date).Add(time.Duration(minutes) * time.Minute), nil
}

// CancellableAt reports whether the appointment can still be cancelled
// at the given wall-clock time: only before its start instant.
func (a *Appointment) CancellableAt(now time.Time) (bool, error) {
	start, err := a.StartInstant()
	if err != nil {
		return false, err
	}
	return now.Before(start), nil
}
