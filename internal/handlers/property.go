package handlers

import (
	"strconv"

	"mmdapay/internal/models"
	"mmdapay/internal/repositories"
	"mmdapay/internal/services/assessment"
	"mmdapay/internal/utils/response"
	"mmdapay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type PropertyHandler struct {
	propertyRepo      repositories.PropertyRepository
	assessmentRepo    repositories.AssessmentRepository
	assessmentService assessment.Service
}

func NewPropertyHandler(
	propertyRepo repositories.PropertyRepository,
	assessmentRepo repositories.AssessmentRepository,
	assessmentService assessment.Service,
) *PropertyHandler {
	return &PropertyHandler{
		propertyRepo:      propertyRepo,
		assessmentRepo:    assessmentRepo,
		assessmentService: assessmentService,
	}
}

// Register adds a property to the valuation roll. Officer only.
func (h *PropertyHandler) Register(c *fiber.Ctx) error {
	var input struct {
		OwnerID       uint    `json:"owner_id"`
		ParcelNumber  string  `json:"parcel_number"`
		Address       string  `json:"address"`
		Zone          string  `json:"zone"`
		Category      string  `json:"category"`
		RateableValue float64 `json:"rateable_value"`
		RateImpost    float64 `json:"rate_impost"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ParcelNumber("parcel_number", input.ParcelNumber)
	v.Required("address", input.Address)
	v.Positive("rateable_value", input.RateableValue)
	v.Positive("rate_impost", input.RateImpost)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	property := &models.Property{
		OwnerID:       input.OwnerID,
		ParcelNumber:  input.ParcelNumber,
		Address:       input.Address,
		Zone:          input.Zone,
		Category:      input.Category,
		RateableValue: input.RateableValue,
		RateImpost:    input.RateImpost,
	}
	if err := h.propertyRepo.Create(property); err != nil {
		return response.Conflict(c, "Parcel number already registered")
	}

	return response.Created(c, "Property registered", property)
}

// ListMine returns the authenticated taxpayer's properties.
func (h *PropertyHandler) ListMine(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	properties, err := h.propertyRepo.ListByOwner(claims.UserID)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "OK", properties)
}

// Get returns one property with its assessments.
func (h *PropertyHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	property, err := h.propertyRepo.GetByID(uint(id))
	if err != nil {
		return response.NotFound(c, "Property not found")
	}

	claims := c.Locals("claims").(*models.UserClaims)
	if property.OwnerID != claims.UserID && !claims.HasPermission(models.PermissionPropertyWrite) {
		return response.Forbidden(c)
	}

	assessments, err := h.assessmentRepo.ListByProperty(property.ID)
	if err != nil {
		return response.ServerError(c, err.Error())
	}

	return response.Success(c, "OK", fiber.Map{
		"property":    property,
		"assessments": assessments,
		"annual_rate": property.AnnualRate(),
	})
}

// IssueAssessment raises the demand notice for a billing year. Officer only.
func (h *PropertyHandler) IssueAssessment(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid property id")
	}

	var input struct {
		Year int `json:"year"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	a, err := h.assessmentService.IssueAssessment(c.Context(), uint(id), input.Year, claims.UserID)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Created(c, "Assessment issued", a)
}

// OutstandingBalance returns the caller's total unpaid balance.
func (h *PropertyHandler) OutstandingBalance(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	balance, err := h.assessmentService.OutstandingBalance(c.Context(), claims.UserID)
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "OK", fiber.Map{"outstanding_balance": balance, "currency": "GHS"})
}
