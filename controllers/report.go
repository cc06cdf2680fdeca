package controllers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
)

// busiestSlot is one ranked hour-of-day bucket.
type busiestSlot struct {
	Time       string `json:"time"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type busiestTimes struct {
	TimeSlots  []busiestSlot `json:"timeSlots"`
	TotalCount int           `json:"totalCount"`
}

// hourLabel renders an hour-of-day as a 12-hour bucket label ("9 AM",
// "2 PM").
func hourLabel(hour int) string {
	period := "AM"
	h := hour
	switch {
	case hour == 0:
		h = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		h = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d %s", h, period)
}

// bucketBusiestTimes groups start times by hour, ranks buckets by
// frequency and keeps the top five with integer percentages.
func bucketBusiestTimes(startTimes []string) busiestTimes {
	counts := map[string]int{}
	total := 0
	for _, t := range startTimes {
		hourStr, _, ok := strings.Cut(t, ":")
		if !ok {
			continue
		}
		hour, err := strconv.Atoi(hourStr)
		if err != nil {
			continue
		}
		counts[hourLabel(hour)]++
		total++
	}

	slots := make([]busiestSlot, 0, len(counts))
	for label, count := range counts {
		slots = append(slots, busiestSlot{Time: label, Count: count})
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Count != slots[j].Count {
			return slots[i].Count > slots[j].Count
		}
		return slots[i].Time < slots[j].Time
	})
	if len(slots) > 5 {
		slots = slots[:5]
	}
	for i := range slots {
		if total > 0 {
			slots[i].Percentage = int(math.Round(float64(slots[i].Count) / float64(total) * 100))
		}
	}

	return busiestTimes{TimeSlots: slots, TotalCount: total}
}

// roundRate converts a completed/total style ratio to a percentage
// rounded to one decimal.
func roundRate(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// GetProviderReports aggregates the provider's historical activity.
func GetProviderReports(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	today := models.StartOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	countWhere := func(query string, args ...interface{}) int64 {
		var n int64
		db.DB.Model(&models.Appointment{}).
			Where("provider_id = ?", providerID).
			Where(query, args...).
			Count(&n)
		return n
	}

	todayAppointments := countWhere("date >= ? AND date < ? AND status = ?",
		today, tomorrow, models.StatusBooked)
	var total int64
	db.DB.Model(&models.Appointment{}).Where("provider_id = ?", providerID).Count(&total)
	completed := countWhere("status = ?", models.StatusCompleted)
	cancelled := countWhere("status = ?", models.StatusCancelled)
	booked := countWhere("status = ?", models.StatusBooked)

	var activeClients int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", providerID).
		Distinct("user_id").
		Count(&activeClients)

	// Busiest hours consider everything still on the books or done.
	var startTimes []string
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ? AND status IN ?", providerID,
			[]models.AppointmentStatus{models.StatusCompleted, models.StatusBooked}).
		Pluck("start_time", &startTimes)

	return c.JSON(fiber.Map{
		"todayAppointments":     todayAppointments,
		"totalAppointments":     total,
		"completedAppointments": completed,
		"cancelledAppointments": cancelled,
		"bookedAppointments":    booked,
		"totalRevenue":          completedRevenue(providerID),
		"activeClients":         activeClients,
		"completionRate":        roundRate(completed, total),
		"busiestTimes":          bucketBusiestTimes(startTimes),
	})
}

// GetUserReports aggregates the logged-in user's booking history.
func GetUserReports(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	today := models.StartOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	countWhere := func(query string, args ...interface{}) int64 {
		var n int64
		db.DB.Model(&models.Appointment{}).
			Where("user_id = ?", userID).
			Where(query, args...).
			Count(&n)
		return n
	}

	totalBooked := countWhere("status = ?", models.StatusBooked)
	totalCompleted := countWhere("status = ?", models.StatusCompleted)
	totalCancelled := countWhere("status = ?", models.StatusCancelled)
	upcoming := countWhere("status = ? AND date >= ?", models.StatusBooked, today)
	todayCount := countWhere("date >= ? AND date < ? AND status = ?",
		today, tomorrow, models.StatusBooked)

	totalAll := totalBooked + totalCompleted + totalCancelled

	return c.JSON(fiber.Map{
		"totalBooked":          totalBooked,
		"totalCompleted":       totalCompleted,
		"totalCancelled":       totalCancelled,
		"upcomingAppointments": upcoming,
		"todayAppointments":    todayCount,
		"cancellationRate":     roundRate(totalCancelled, totalAll),
		"totalAll":             totalAll,
	})
}
