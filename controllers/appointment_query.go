package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
	"github.com/bookwell/bookwell-api/utils"
)

// appointmentSortColumns whitelists the sortable fields; anything else
// falls back to date.
var appointmentSortColumns = map[string]string{
	"date":      "date",
	"createdAt": "created_at",
	"startTime": "start_time",
	"status":    "status",
}

type listParams struct {
	page      int
	limit     int
	status    string
	listType  string // "upcoming" | "past" | ""
	startDate string
	endDate   string
	sortBy    string
	sortOrder string
}

func parseListParams(c *fiber.Ctx) listParams {
	return listParams{
		page:      c.QueryInt("page", 1),
		limit:     c.QueryInt("limit", 10),
		status:    c.Query("status"),
		listType:  c.Query("type"),
		startDate: c.Query("startDate"),
		endDate:   c.Query("endDate"),
		sortBy:    c.Query("sortBy", "date"),
		sortOrder: c.Query("sortOrder", "desc"),
	}
}

// applyListFilters narrows a scoped appointment query by status,
// upcoming/past classification and date range. Classification is
// relative to today at 00:00.
func applyListFilters(query *gorm.DB, p listParams, today time.Time) *gorm.DB {
	if p.status != "" {
		query = query.Where("status = ?", p.status)
	}

	switch p.listType {
	case "upcoming":
		query = query.Where("date >= ? AND status = ?", today, models.StatusBooked)
	case "past":
		query = query.Where("date < ? OR status IN ?", today,
			[]models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled})
	}

	if p.startDate != "" {
		if start, err := time.Parse(dateLayout, p.startDate); err == nil {
			query = query.Where("date >= ?", models.StartOfDay(start))
		}
	}
	if p.endDate != "" {
		if end, err := time.Parse(dateLayout, p.endDate); err == nil {
			query = query.Where("date <= ?", models.StartOfDay(end))
		}
	}
	return query
}

func orderClause(p listParams) string {
	column, ok := appointmentSortColumns[p.sortBy]
	if !ok {
		column = "date"
	}
	order := "desc"
	if p.sortOrder == "asc" {
		order = "asc"
	}
	return column + " " + order
}

// appointmentStats computes the count block shared by both listings.
// scope returns a fresh query narrowed to the caller (user or
// provider); a fresh one per count keeps GORM conditions from leaking
// between aggregates.
func appointmentStats(scope func() *gorm.DB, today time.Time) fiber.Map {
	tomorrow := today.AddDate(0, 0, 1)

	countOf := func(q *gorm.DB) int64 {
		var n int64
		q.Count(&n)
		return n
	}

	return fiber.Map{
		"total": countOf(scope()),
		"today": countOf(scope().Where("date >= ? AND date < ?", today, tomorrow)),
		"upcoming": countOf(scope().
			Where("date >= ? AND status = ?", today, models.StatusBooked)),
		"past": countOf(scope().
			Where("date < ? OR status IN ?", today,
				[]models.AppointmentStatus{models.StatusCompleted, models.StatusCancelled})),
		"booked":    countOf(scope().Where("status = ?", models.StatusBooked)),
		"completed": countOf(scope().Where("status = ?", models.StatusCompleted)),
		"cancelled": countOf(scope().Where("status = ?", models.StatusCancelled)),
	}
}

// completedRevenue sums the live service price over a provider's
// completed appointments. Price is joined at query time, not
// snapshotted at booking time.
func completedRevenue(providerID uint) float64 {
	var result struct {
		TotalRevenue float64
	}
	db.DB.Table("appointments").
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.provider_id = ? AND appointments.status = ?",
			providerID, models.StatusCompleted).
		Select("COALESCE(SUM(services.price), 0) AS total_revenue").
		Scan(&result)
	return result.TotalRevenue
}

// GetMyAppointments returns the logged-in user's appointments with
// filters, pagination and a stats block.
func GetMyAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parseListParams(c)
	today := models.StartOfDay(time.Now())

	scope := func() *gorm.DB {
		return db.DB.Model(&models.Appointment{}).Where("user_id = ?", userID)
	}

	query := applyListFilters(scope(), p, today)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	pagination := utils.NewPagination(p.page, p.limit, total)

	var appointments []models.Appointment
	if err := query.
		Preload("Provider", selectUserFields).
		Preload("Service", selectServiceFields).
		Order(orderClause(p)).
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       appointments,
		"pagination": pagination,
		"stats":      appointmentStats(scope, today),
	})
}

// GetProviderAppointments returns the logged-in provider's appointments
// with the extra provider-side filters and stats.
func GetProviderAppointments(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	p := parseListParams(c)
	today := models.StartOfDay(time.Now())

	scope := func() *gorm.DB {
		return db.DB.Model(&models.Appointment{}).Where("provider_id = ?", providerID)
	}

	query := applyListFilters(scope(), p, today)

	if dateStr := c.Query("date"); dateStr != "" {
		if date, err := time.Parse(dateLayout, dateStr); err == nil {
			query = query.Where("date = ?", models.StartOfDay(date))
		}
	}
	if userID := c.QueryInt("userId"); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if serviceID := c.QueryInt("serviceId"); serviceID > 0 {
		query = query.Where("service_id = ?", serviceID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	pagination := utils.NewPagination(p.page, p.limit, total)

	var appointments []models.Appointment
	if err := query.
		Preload("User", selectUserFields).
		Preload("Service", selectServiceFields).
		Order(orderClause(p)).
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	stats := appointmentStats(scope, today)
	var noShow int64
	scope().Where("date < ? AND status = ?", today, models.StatusBooked).Count(&noShow)
	stats["noShow"] = noShow
	stats["totalRevenue"] = completedRevenue(providerID)

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       appointments,
		"pagination": pagination,
		"stats":      stats,
	})
}
