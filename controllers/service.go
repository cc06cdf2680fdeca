package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
	"github.com/bookwell/bookwell-api/utils"
)

var serviceSortFields = map[string]bool{
	"created_at": true,
	"name":       true,
	"price":      true,
	"duration":   true,
}

// GetAllServices returns active services, paginated, with search and
// price/duration range filters.
func GetAllServices(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")
	sortBy := c.Query("sortBy", "created_at")
	sortOrder := c.Query("sortOrder", "desc")

	query := db.DB.Model(&models.Service{}).Where("is_active = ?", true)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		query = query.Where("price <= ?", maxPrice)
	}
	if minDuration := c.Query("minDuration"); minDuration != "" {
		query = query.Where("duration >= ?", minDuration)
	}
	if maxDuration := c.Query("maxDuration"); maxDuration != "" {
		query = query.Where("duration <= ?", maxDuration)
	}

	if !serviceSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	pagination := utils.NewPagination(page, limit, total)

	var services []models.Service
	if err := query.Preload("Provider", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name", "email", "phone") }).
		Order(sortBy + " " + sortOrder).
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       services,
		"pagination": pagination,
	})
}

// GetMyServices returns the logged-in provider's active services.
func GetMyServices(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	search := c.Query("search")

	query := db.DB.Model(&models.Service{}).
		Where("provider_id = ? AND is_active = ?", providerID, true)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	pagination := utils.NewPagination(page, limit, total)

	var services []models.Service
	if err := query.Order("created_at desc").
		Limit(pagination.Limit).
		Offset(pagination.Offset()).
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       services,
		"pagination": pagination,
	})
}

// CreateService creates a new offering for the logged-in provider.
func CreateService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)

	service := new(models.Service)
	if err := c.BodyParser(service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	service.ProviderID = providerID
	service.IsActive = true

	if err := db.DB.Create(service).Error; err != nil {
		return respondError(c, err, "Failed to create service")
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService applies a partial update to a service the provider owns.
func UpdateService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", id, providerID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	if err := c.BodyParser(&service); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	// Ownership is not transferable through updates.
	service.ProviderID = providerID

	if err := db.DB.Save(&service).Error; err != nil {
		return respondError(c, err, "Failed to update service")
	}
	return c.JSON(service)
}

// DeleteService soft-deletes: historical appointments keep referencing
// the row, it just stops being offered.
func DeleteService(c *fiber.Ctx) error {
	providerID := c.Locals("userID").(uint)
	id := c.Params("id")

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", id, providerID).First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}

	service.IsActive = false
	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete service",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Service deleted successfully"})
}
