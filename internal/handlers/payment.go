package handlers

import (
	"errors"
	"log"

	"mmdapay/internal/models"
	"mmdapay/internal/repositories"
	"mmdapay/internal/repositories/cache"
	"mmdapay/internal/services/assessment"
	"mmdapay/internal/services/payment"
	"mmdapay/internal/utils"
	"mmdapay/internal/utils/response"
	"mmdapay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler is the boundary between the HTTP layer and the payment
// service. It owns everything the service deliberately does not:
// reference idempotency, persistence of results, and applying settled
// payments to assessments.
type PaymentHandler struct {
	paymentService    payment.Service
	assessmentService assessment.Service
	paymentRepo       repositories.PaymentRepository
	idempotency       *cache.IdempotencyStore
}

func NewPaymentHandler(
	paymentService payment.Service,
	assessmentService assessment.Service,
	paymentRepo repositories.PaymentRepository,
	idempotency *cache.IdempotencyStore,
) *PaymentHandler {
	return &PaymentHandler{
		paymentService:    paymentService,
		assessmentService: assessmentService,
		paymentRepo:       paymentRepo,
		idempotency:       idempotency,
	}
}

// Initiate processes a payment request end to end: validate, guard the
// reference, dispatch to the payment service, persist the outcome.
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		payment.PaymentRequest
		AssessmentID *uint `json:"assessment_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if input.Reference == "" {
		input.Reference = utils.GeneratePaymentReference()
	}

	v := validation.New()
	v.Payment(&input.PaymentRequest)
	if !v.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": v.Errors})
	}

	duplicate, err := h.idempotency.Begin(c.Context(), input.Reference)
	if err != nil && !errors.Is(err, cache.ErrReferenceInProgress) {
		log.Printf("idempotency check failed for %s: %v", input.Reference, err)
	}
	if duplicate {
		return response.Conflict(c, "A payment with this reference already exists")
	}

	result := h.paymentService.ProcessPayment(c.Context(), input.PaymentRequest)

	record := &models.Payment{
		UserID:               claims.UserID,
		AssessmentID:         input.AssessmentID,
		Reference:            input.Reference,
		TransactionID:        result.TransactionID,
		Method:               string(input.Method),
		Provider:             result.ProviderKey,
		ProviderName:         result.Provider,
		Status:               string(result.Status),
		Amount:               result.Amount,
		Fee:                  result.Fee,
		TotalAmount:          result.TotalAmount,
		Description:          input.Description,
		RequiresVerification: input.Method == payment.MethodCash,
		Metadata:             models.JSON(result.Metadata),
	}
	if result.Success {
		record.ReceiptNumber = utils.GenerateReceiptNumber()
	}

	if err := h.paymentRepo.Create(record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return response.Conflict(c, "A payment with this reference already exists")
		}
		log.Printf("failed to persist payment %s: %v", input.Reference, err)
		return response.ServerError(c, "Failed to record payment")
	}

	if result.Success {
		if err := h.idempotency.Complete(c.Context(), input.Reference); err != nil {
			log.Printf("failed to complete idempotency key %s: %v", input.Reference, err)
		}
	} else {
		// a failed attempt may be retried with the same reference only
		// after the stored record is removed by an officer, but the
		// redis key should not linger
		if err := h.idempotency.Release(c.Context(), input.Reference); err != nil {
			log.Printf("failed to release idempotency key %s: %v", input.Reference, err)
		}
	}

	// card settles synchronously; apply it to the assessment right away
	if result.Success && result.Status == payment.StatusSuccess && input.AssessmentID != nil {
		if _, err := h.assessmentService.ApplyPayment(c.Context(), *input.AssessmentID, result.Amount); err != nil {
			log.Printf("failed to apply payment %s to assessment %d: %v", input.Reference, *input.AssessmentID, err)
		}
	}

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{
		"message": result.Message,
		"data":    result,
		"receipt": record.ReceiptNumber,
	})
}

// Get returns one recorded payment by reference.
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	record, err := h.paymentRepo.GetByReference(c.Params("reference"))
	if err != nil {
		return response.NotFound(c, "Payment not found")
	}
	if record.UserID != claims.UserID && !claims.HasPermission(models.PermissionCashVerify) {
		return response.Forbidden(c)
	}
	return response.Success(c, "OK", record)
}

// Status re-queries the provider for a payment's current state, using
// the provider recorded at initiation so the query reaches the backend
// that issued the transaction.
func (h *PaymentHandler) Status(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	record, err := h.paymentRepo.GetByReference(c.Params("reference"))
	if err != nil {
		return response.NotFound(c, "Payment not found")
	}
	if record.UserID != claims.UserID && !claims.HasPermission(models.PermissionCashVerify) {
		return response.Forbidden(c)
	}

	result := h.paymentService.CheckPaymentStatus(
		c.Context(), record.TransactionID, payment.Method(record.Method), record.Provider)
	if result == nil {
		// status unknown is not a failure; tell the caller to retry
		return response.Error(c, fiber.StatusServiceUnavailable, "Payment status is currently unknown")
	}

	// Cash settles only through officer verification. The synthetic
	// status the service reports for it must never overwrite the stored
	// record or credit an assessment.
	if record.RequiresVerification && record.VerifiedAt == nil {
		return response.Success(c, "OK", record)
	}

	if string(result.Status) != record.Status {
		if err := h.paymentRepo.UpdateStatus(record.Reference, string(result.Status)); err != nil {
			log.Printf("failed to update status for %s: %v", record.Reference, err)
		}
		if result.Status == payment.StatusSuccess && record.AssessmentID != nil {
			if _, err := h.assessmentService.ApplyPayment(c.Context(), *record.AssessmentID, record.Amount); err != nil {
				log.Printf("failed to apply payment %s to assessment %d: %v", record.Reference, *record.AssessmentID, err)
			}
		}
	}

	return response.Success(c, "OK", result)
}

// Methods returns the static payment method catalog.
func (h *PaymentHandler) Methods(c *fiber.Ctx) error {
	return response.Success(c, "OK", h.paymentService.GetPaymentMethods())
}

// ListMine returns the caller's payment history.
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	payments, err := h.paymentRepo.ListByUser(claims.UserID, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "OK", payments)
}

// PendingCash lists cash payments awaiting verification. Officer only.
func (h *PaymentHandler) PendingCash(c *fiber.Ctx) error {
	payments, err := h.paymentRepo.ListPendingCash()
	if err != nil {
		return response.ServerError(c, err.Error())
	}
	return response.Success(c, "OK", payments)
}

// VerifyCash confirms receipt of physical cash for a pending payment.
// Officer only.
func (h *PaymentHandler) VerifyCash(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	record, err := h.paymentRepo.GetByReference(c.Params("reference"))
	if err != nil {
		return response.NotFound(c, "Payment not found")
	}
	if record.Method != string(payment.MethodCash) || !record.RequiresVerification {
		return response.BadRequest(c, "Payment does not require cash verification")
	}
	if record.VerifiedAt != nil {
		return response.Conflict(c, "Payment already verified")
	}

	if err := h.paymentRepo.MarkVerified(record.Reference, claims.UserID); err != nil {
		return response.ServerError(c, err.Error())
	}
	if record.AssessmentID != nil {
		if _, err := h.assessmentService.ApplyPayment(c.Context(), *record.AssessmentID, record.Amount); err != nil {
			log.Printf("failed to apply payment %s to assessment %d: %v", record.Reference, *record.AssessmentID, err)
		}
	}

	return response.Success(c, "Cash payment verified", nil)
}
