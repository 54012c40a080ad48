package handlers

import (
	"mmdapay/internal/models"
	"mmdapay/internal/repositories"
	"mmdapay/internal/utils/response"
	"mmdapay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	userRepo repositories.UserRepository
}

func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// Register creates a taxpayer account.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Phone           string `json:"phone"`
		TIN             string `json:"tin"`
		GhanaCardNumber string `json:"ghana_card_number"`
		Password        string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Registration(input.Name, input.Email, input.Phone, input.TIN, input.Password)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.ServerError(c, "Failed to process password")
	}

	user := &models.User{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		TIN:             input.TIN,
		GhanaCardNumber: input.GhanaCardNumber,
		Password:        string(hashed),
		Role:            models.RoleTaxpayer,
	}
	if err := h.userRepo.Create(user); err != nil {
		return response.Conflict(c, "Account with this email, phone or TIN already exists")
	}

	return response.Created(c, "Registration successful", fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Me returns the authenticated account.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		return response.NotFound(c, "Account not found")
	}

	return response.Success(c, "OK", fiber.Map{
		"id":                user.ID,
		"name":              user.Name,
		"email":             user.Email,
		"phone":             user.Phone,
		"tin":               user.TIN,
		"role":              user.Role,
		"ghana_card_number": user.GhanaCardNumber,
	})
}
