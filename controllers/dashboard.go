package controllers

import (
	"math"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
	"github.com/bookwell/bookwell-api/utils"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetProviderDashboard returns the provider's stats block plus recent
// appointments, today's schedule and the most-booked services.
func GetProviderDashboard(c *fiber.Ctx) error {
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

	var total int64
	db.DB.Model(&models.Appointment{}).Where("provider_id = ?", providerID).Count(&total)
	todayCount := countWhere("date >= ? AND date < ? AND status = ?",
		today, tomorrow, models.StatusBooked)
	upcoming := countWhere("date >= ? AND status = ?", today, models.StatusBooked)
	booked := countWhere("status = ?", models.StatusBooked)
	completed := countWhere("status = ?", models.StatusCompleted)
	cancelled := countWhere("status = ?", models.StatusCancelled)

	totalRevenue := completedRevenue(providerID)
	averageRevenue := 0.0
	if completed > 0 {
		averageRevenue = totalRevenue / float64(completed)
	}

	var activeClients int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", providerID).
		Distinct("user_id").
		Count(&activeClients)

	var activeServices int64
	db.DB.Model(&models.Service{}).
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Count(&activeServices)

	var recent []models.Appointment
	db.DB.Where("provider_id = ?", providerID).
		Preload("User", selectUserFields).
		Preload("Service", selectServiceFields).
		Order("date desc, start_time desc").
		Limit(5).
		Find(&recent)

	var todaysSchedule []models.Appointment
	db.DB.Where("provider_id = ? AND date >= ? AND date < ? AND status = ?",
		providerID, today, tomorrow, models.StatusBooked).
		Preload("User", selectUserFields).
		Preload("Service", selectServiceFields).
		Order("start_time asc").
		Find(&todaysSchedule)

	type popularService struct {
		ServiceID   uint    `json:"serviceId"`
		ServiceName string  `json:"serviceName"`
		Count       int64   `json:"count"`
		Revenue     float64 `json:"revenue"`
	}
	var popular []popularService
	db.DB.Table("appointments").
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.provider_id = ? AND appointments.status = ?",
			providerID, models.StatusCompleted).
		Select("services.id AS service_id, services.name AS service_name, COUNT(*) AS count, SUM(services.price) AS revenue").
		Group("services.id, services.name").
		Order("count DESC").
		Limit(5).
		Scan(&popular)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"stats": fiber.Map{
				"total":            total,
				"today":            todayCount,
				"upcoming":         upcoming,
				"booked":           booked,
				"completed":        completed,
				"cancelled":        cancelled,
				"completionRate":   roundRate(completed, total),
				"cancellationRate": roundRate(cancelled, total),
				"totalRevenue":     round2(totalRevenue),
				"averageRevenue":   round2(averageRevenue),
				"activeClients":    activeClients,
				"activeServices":   activeServices,
			},
			"recentAppointments": recent,
			"todaysSchedule":     todaysSchedule,
			"popularServices":    popular,
			"summary": fiber.Map{
				"hasUpcoming":        upcoming > 0,
				"hasScheduleToday":   len(todaysSchedule) > 0,
				"hasPopularServices": len(popular) > 0,
			},
		},
	})
}

// GetProviderTrends groups the period's appointments per day with
// status counts and revenue by service.
func GetProviderTrends(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	period := c.Query("period", "week")

	end := time.Now()
	var start time.Time
	switch period {
	case "month":
		start = end.AddDate(0, -1, 0)
	case "year":
		start = end.AddDate(-1, 0, 0)
	default:
		period = "week"
		start = end.AddDate(0, 0, -7)
	}

	var appointments []models.Appointment
	if err := db.DB.Where("provider_id = ? AND date >= ? AND date <= ?",
		providerID, models.StartOfDay(start), end).
		Preload("Service", selectServiceFields).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load trends data",
			Error:   err.Error(),
		})
	}

	type dayBucket struct {
		Date      string  `json:"date"`
		Booked    int     `json:"booked"`
		Completed int     `json:"completed"`
		Cancelled int     `json:"cancelled"`
		Total     int     `json:"total"`
		Revenue   float64 `json:"revenue"`
	}
	type serviceBucket struct {
		Revenue float64 `json:"revenue"`
		Count   int     `json:"count"`
	}

	byDate := map[string]*dayBucket{}
	statusCounts := map[models.AppointmentStatus]int{}
	revenueByService := map[string]*serviceBucket{}
	totalRevenue := 0.0

	for _, a := range appointments {
		dateStr := a.Date.Format(dateLayout)
		bucket, ok := byDate[dateStr]
		if !ok {
			bucket = &dayBucket{Date: dateStr}
			byDate[dateStr] = bucket
		}
		switch a.Status {
		case models.StatusBooked:
			bucket.Booked++
		case models.StatusCompleted:
			bucket.Completed++
		case models.StatusCancelled:
			bucket.Cancelled++
		}
		bucket.Total++
		statusCounts[a.Status]++

		if a.Status == models.StatusCompleted {
			bucket.Revenue += a.Service.Price
			totalRevenue += a.Service.Price

			sb, ok := revenueByService[a.Service.Name]
			if !ok {
				sb = &serviceBucket{}
				revenueByService[a.Service.Name] = sb
			}
			sb.Revenue += a.Service.Price
			sb.Count++
		}
	}

	chartData := make([]dayBucket, 0, len(byDate))
	for _, b := range byDate {
		chartData = append(chartData, *b)
	}
	// ISO dates sort correctly as strings.
	sort.Slice(chartData, func(i, j int) bool { return chartData[i].Date < chartData[j].Date })

	averageDailyRevenue := 0.0
	if len(byDate) > 0 {
		averageDailyRevenue = totalRevenue / float64(len(byDate))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"period": fiber.Map{
				"name":  period,
				"start": start,
				"end":   end,
			},
			"chartData": chartData,
			"statusCounts": fiber.Map{
				"booked":    statusCounts[models.StatusBooked],
				"completed": statusCounts[models.StatusCompleted],
				"cancelled": statusCounts[models.StatusCancelled],
			},
			"total":            len(appointments),
			"totalRevenue":     round2(totalRevenue),
			"revenueByService": revenueByService,
			"summary": fiber.Map{
				"averageDailyRevenue": round2(averageDailyRevenue),
				"completionRate":      roundRate(int64(statusCounts[models.StatusCompleted]), int64(len(appointments))),
			},
		},
	})
}

// GetUserDashboard returns the user's counts and next appointments.
func GetUserDashboard(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	today := models.StartOfDay(time.Now())

	countWhere := func(query string, args ...interface{}) int64 {
		var n int64
		db.DB.Model(&models.Appointment{}).
			Where("user_id = ?", userID).
			Where(query, args...).
			Count(&n)
		return n
	}

	var total int64
	db.DB.Model(&models.Appointment{}).Where("user_id = ?", userID).Count(&total)
	upcoming := countWhere("date >= ? AND status = ?", today, models.StatusBooked)
	completed := countWhere("status = ?", models.StatusCompleted)
	cancelled := countWhere("status = ?", models.StatusCancelled)

	var nextAppointments []models.Appointment
	db.DB.Where("user_id = ? AND date >= ? AND status = ?",
		userID, today, models.StatusBooked).
		Preload("Provider", selectUserFields).
		Preload("Service", selectServiceFields).
		Order("date asc, start_time asc").
		Limit(5).
		Find(&nextAppointments)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"stats": fiber.Map{
				"total":     total,
				"upcoming":  upcoming,
				"completed": completed,
				"cancelled": cancelled,
			},
			"nextAppointments": nextAppointments,
		},
	})
}
