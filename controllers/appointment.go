package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/apperr"
	"github.com/bookwell/bookwell-api/cache"
	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
	"github.com/bookwell/bookwell-api/utils"
)

// BookAppointment validates the requested slot against the provider's
// schedule and commits the reservation. The commit re-checks conflicts
// under a row lock; the partial unique index on (provider, date,
// start_time) catches whatever slips between concurrent transactions.
func BookAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		ProviderID uint   `json:"providerId"`
		ServiceID  uint   `json:"serviceId"`
		Date       string `json:"date"`
		StartTime  string `json:"startTime"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}
	day := models.StartOfDay(date)

	var service models.Service
	if err := db.DB.First(&service, input.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	startMinutes, err := utils.TimeToMinutes(input.StartTime)
	if err != nil {
		return respondError(c, err, "Invalid start time")
	}
	endMinutes := startMinutes + service.Duration
	if endMinutes >= 24*60 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Appointment cannot run past midnight",
		})
	}
	endTime := utils.MinutesToTime(endMinutes)

	rule, blocked, err := lookupDayRule(input.ProviderID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}
	if rule == nil || rule.IsBlocked {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Provider not available on this day",
		})
	}
	if blocked {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Date is blocked",
		})
	}

	// The slot must fit inside the working window the generator offers
	// slots from.
	windowStart, err := utils.TimeToMinutes(rule.StartTime)
	if err != nil {
		return respondError(c, err, "Invalid availability window")
	}
	windowEnd, err := utils.TimeToMinutes(rule.EndTime)
	if err != nil {
		return respondError(c, err, "Invalid availability window")
	}
	if startMinutes < windowStart || endMinutes > windowEnd {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Requested time is outside working hours",
		})
	}

	appointment := models.Appointment{
		UserID:     userID,
		ProviderID: input.ProviderID,
		ServiceID:  input.ServiceID,
		Date:       day,
		StartTime:  input.StartTime,
		EndTime:    endTime,
		Status:     models.StatusBooked,
		Notes:      input.Notes,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the provider's booked rows for the date so two
		// overlapping requests serialize here.
		var existing []models.Appointment
		if err := tx.Raw(`
			SELECT id, start_time, end_time
			FROM appointments
			WHERE provider_id = ? AND date = ? AND status = ?
			FOR UPDATE
		`, input.ProviderID, day, models.StatusBooked).Scan(&existing).Error; err != nil {
			return err
		}

		requested := utils.Interval{Start: startMinutes, End: endMinutes}
		for _, e := range existing {
			bStart, err := utils.TimeToMinutes(e.StartTime)
			if err != nil {
				return err
			}
			bEnd, err := utils.TimeToMinutes(e.EndTime)
			if err != nil {
				return err
			}
			if requested.Overlaps(utils.Interval{Start: bStart, End: bEnd}) {
				return apperr.Conflict("Time slot already booked")
			}
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = apperr.Conflict("Time slot already booked")
		}
		return respondError(c, err, "Failed to book appointment")
	}

	cache.InvalidateProviderDate(day.Format(dateLayout), input.ProviderID)

	db.DB.
		Preload("Provider", selectUserFields).
		Preload("Service", selectServiceFields).
		First(&appointment, appointment.ID)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment lets the owning user cancel a booked appointment
// strictly before its start instant.
func CancelAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Where("id = ? AND user_id = ? AND status = ?",
		id, userID, models.StatusBooked).First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found or cannot be cancelled",
		})
	}

	cancellable, err := appointment.CancellableAt(time.Now())
	if err != nil {
		return respondError(c, err, "Failed to cancel appointment")
	}
	if !cancellable {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Appointment already started or passed",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled, models.CancelledByUser); err != nil {
		return respondError(c, err, "Failed to cancel appointment")
	}

	cache.InvalidateProviderDate(appointment.Date.Format(dateLayout), appointment.ProviderID)

	return c.JSON(fiber.Map{"message": "Appointment cancelled successfully"})
}

// UpdateAppointmentStatus lets the owning provider move an appointment
// through the lifecycle. Transitions out of terminal states are
// rejected by the model.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	id := c.Params("id")

	var input struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.Where("id = ? AND provider_id = ?", id, providerID).
		First(&appointment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if err := appointment.UpdateStatus(db.DB, input.Status, models.CancelledByProvider); err != nil {
		return respondError(c, err, "Failed to update appointment")
	}

	if input.Status == models.StatusCancelled {
		cache.InvalidateProviderDate(appointment.Date.Format(dateLayout), appointment.ProviderID)
	}

	return c.JSON(appointment)
}

func selectUserFields(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email", "phone")
}

func selectServiceFields(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "duration", "price")
}
