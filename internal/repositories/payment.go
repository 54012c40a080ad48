package repositories

import (
	"errors"
	"strings"
	"time"

	"mmdapay/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrDuplicateReference = errors.New("payment reference already used")
)

// PaymentRepository persists payment attempts. The unique index on
// reference is the at-most-once backstop for concurrent submissions
// that slip past the Redis idempotency guard.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByReference(reference string) (*models.Payment, error)
	GetByTransactionID(transactionID string) (*models.Payment, error)
	ListByUser(userID uint, limit, offset int) ([]models.Payment, error)
	ListPendingCash() ([]models.Payment, error)
	UpdateStatus(reference string, status string) error
	MarkVerified(reference string, officerID uint) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		// Postgres unique_violation on the reference index
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

func (r *paymentRepository) GetByReference(reference string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("Assessment").Where("reference = ?", reference).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByUser(userID uint, limit, offset int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListPendingCash() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("method = ? AND requires_verification = ? AND verified_at IS NULL", "cash", true).
		Order("created_at").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) UpdateStatus(reference string, status string) error {
	return r.db.Model(&models.Payment{}).
		Where("reference = ?", reference).
		Update("status", status).Error
}

func (r *paymentRepository) MarkVerified(reference string, officerID uint) error {
	now := time.Now()
	return r.db.Model(&models.Payment{}).
		Where("reference = ?", reference).
		Updates(map[string]interface{}{
			"status":      "success",
			"verified_by": officerID,
			"verified_at": now,
		}).Error
}
