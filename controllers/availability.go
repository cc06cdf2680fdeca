package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/cache"
	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
	"github.com/bookwell/bookwell-api/utils"
)

const dateLayout = "2006-01-02"

// SetAvailability upserts the weekly rule for one day of the week.
// Shrinking hours does not retroactively cancel existing bookings.
func SetAvailability(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var input struct {
		DayOfWeek models.DayOfWeek `json:"dayOfWeek"`
		StartTime string           `json:"startTime"`
		EndTime   string           `json:"endTime"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	startMinutes, err := utils.TimeToMinutes(input.StartTime)
	if err != nil {
		return respondError(c, err, "Invalid start time")
	}
	endMinutes, err := utils.TimeToMinutes(input.EndTime)
	if err != nil {
		return respondError(c, err, "Invalid end time")
	}
	if startMinutes >= endMinutes {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Start time must be before end time",
		})
	}
	if input.DayOfWeek < models.Sunday || input.DayOfWeek > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Day of week must be between 0 and 6",
		})
	}

	var rule models.Availability
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("provider_id = ? AND day_of_week = ?", providerID, input.DayOfWeek).
			First(&rule)
		if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
			return result.Error
		}
		if result.RowsAffected > 0 {
			rule.StartTime = input.StartTime
			rule.EndTime = input.EndTime
			rule.IsBlocked = false
			return tx.Save(&rule).Error
		}
		rule = models.NewWeeklyRule(providerID, input.DayOfWeek, input.StartTime, input.EndTime)
		return tx.Create(&rule).Error
	})
	if err != nil {
		return respondError(c, err, "Failed to set availability")
	}

	cache.InvalidateProvider(providerID)

	return c.JSON(rule)
}

// BlockDate marks one calendar date fully unavailable. Blocking an
// already blocked date is rejected rather than duplicated.
func BlockDate(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var input struct {
		Date   string `json:"date"`
		Reason string `json:"reason"`
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

	var existing models.Availability
	if db.DB.Where("provider_id = ? AND day_of_week = ? AND blocked_date = ?",
		providerID, models.DateBlockDay, day).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Date is already blocked",
		})
	}

	block := models.NewDateBlock(providerID, day, input.Reason)
	if err := db.DB.Create(&block).Error; err != nil {
		return respondError(c, err, "Failed to block date")
	}

	cache.InvalidateProviderDate(day.Format(dateLayout), providerID)

	return c.JSON(block)
}

// GetMyAvailability returns the weekly rules (sparse, ordered by day)
// and the list of blocked dates.
func GetMyAvailability(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	var weekly []models.Availability
	if err := db.DB.Where("provider_id = ? AND day_of_week BETWEEN ? AND ?",
		providerID, models.Sunday, models.Saturday).
		Order("day_of_week asc").
		Find(&weekly).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}

	var blocks []models.Availability
	if err := db.DB.Where("provider_id = ? AND day_of_week = ? AND is_blocked = ?",
		providerID, models.DateBlockDay, true).
		Find(&blocks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch blocked dates",
			Error:   err.Error(),
		})
	}

	blockedDates := make([]fiber.Map, 0, len(blocks))
	for _, b := range blocks {
		blockedDates = append(blockedDates, fiber.Map{
			"date":   b.BlockedDate,
			"reason": b.BlockedReason,
		})
	}

	return c.JSON(fiber.Map{
		"weekly":       weekly,
		"blockedDates": blockedDates,
	})
}

// GetAvailableSlots computes the bookable slots for a provider, service
// and date. Past dates, missing or blocked weekly rules and blocked
// dates all yield an empty list, never an error.
func GetAvailableSlots(c *fiber.Ctx) error {
	providerID := uint(c.QueryInt("providerId"))
	serviceID := uint(c.QueryInt("serviceId"))
	dateStr := c.Query("date")

	if providerID == 0 || serviceID == 0 || dateStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required parameters: providerId, serviceId, date",
		})
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date format, use YYYY-MM-DD",
		})
	}

	now := time.Now()
	day := models.StartOfDay(date)
	today := models.StartOfDay(now)
	if day.Before(today) {
		return c.JSON([]utils.Slot{})
	}

	var service models.Service
	if err := db.DB.First(&service, serviceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	// Same-day lists decay as time passes; only future days are safe
	// to serve from cache between write-path invalidations.
	key := cache.SlotKey(dateStr, providerID, serviceID)
	if !day.Equal(today) {
		if payload, ok := cache.GetSlots(key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.SendString(payload)
		}
	}

	rule, blocked, err := lookupDayRule(providerID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability",
			Error:   err.Error(),
		})
	}
	if rule == nil || blocked {
		return c.JSON([]utils.Slot{})
	}

	booked, err := bookedIntervals(db.DB, providerID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	slots, err := utils.GenerateTimeSlots(rule.StartTime, rule.EndTime, service.Duration, booked)
	if err != nil {
		return respondError(c, err, "Failed to generate slots")
	}

	if day.Equal(today) {
		slots = utils.FilterPastSlots(slots, now)
	} else if payload, err := json.Marshal(slots); err == nil {
		cache.SetSlots(key, string(payload))
	}

	return c.JSON(slots)
}

// lookupDayRule resolves the weekly rule for the date's day of week and
// whether the specific date is blocked. A nil rule means the provider
// does not work that day at all.
func lookupDayRule(providerID uint, day time.Time) (*models.Availability, bool, error) {
	var rule models.Availability
	result := db.DB.Where("provider_id = ? AND day_of_week = ?",
		providerID, models.DayOfWeek(day.Weekday())).First(&rule)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, result.Error
	}
	if rule.IsBlocked {
		return &rule, true, nil
	}

	var count int64
	err := db.DB.Model(&models.Availability{}).
		Where("provider_id = ? AND day_of_week = ? AND blocked_date = ?",
			providerID, models.DateBlockDay, day).
		Count(&count).Error
	if err != nil {
		return nil, false, err
	}
	return &rule, count > 0, nil
}

// bookedIntervals loads the still-booked appointments for a provider
// and date as minute intervals for the slot generator.
func bookedIntervals(tx *gorm.DB, providerID uint, day time.Time) ([]utils.Interval, error) {
	var appointments []models.Appointment
	if err := tx.Where("provider_id = ? AND date = ? AND status = ?",
		providerID, day, models.StatusBooked).
		Order("start_time asc").
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	intervals := make([]utils.Interval, 0, len(appointments))
	for _, a := range appointments {
		start, err := utils.TimeToMinutes(a.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := utils.TimeToMinutes(a.EndTime)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, utils.Interval{Start: start, End: end})
	}
	return intervals, nil
}
