package controllers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookwell/bookwell-api/db"
	"github.com/bookwell/bookwell-api/models"
	"github.com/bookwell/bookwell-api/utils"
)

func secret() []byte {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		s = "solid_secret_key" // Replace with secure key in production
	}
	return []byte(s)
}

func signToken(user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// Register handles user registration. Role is fixed here and never
// changes afterwards.
func Register(c *fiber.Ctx) error {
	user := new(models.User)
	if err := c.BodyParser(user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	if user.Email == "" || user.Password == "" || user.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing required fields",
		})
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if !user.Role.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Role must be user or provider",
		})
	}

	var existing models.User
	if db.DB.Where("email = ?", user.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "User with this email already exists",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to hash password",
		})
	}
	user.Password = string(hashed)

	if err := db.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create user",
			Error:   err.Error(),
		})
	}

	token, err := signToken(user, 24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"phone": user.Phone,
		"token": token,
	})
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid credentials",
		})
	}

	token, err := signToken(&user, 24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}
	refreshToken, err := signToken(&user, 7*24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate refresh token",
		})
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"refreshToken": refreshToken,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
			"phone": user.Phone,
		},
	})
}

// GetUserProfile returns the current user's profile
func GetUserProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// RefreshToken generates a new access token using a refresh token
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken"`
	}

	req := new(RefreshRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot parse JSON",
			Error:   err.Error(),
		})
	}

	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
			Message: "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	newClaims := jwt.MapClaims{
		"id":    claims["id"],
		"email": claims["email"],
		"role":  claims["role"],
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	newToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, newClaims).SignedString(secret())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{"token": newToken})
}
