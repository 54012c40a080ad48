// Package assessment implements property-rate bookkeeping: issuing
// annual demand notices and applying settled payments against them.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mmdapay/internal/models"
	"mmdapay/internal/repositories"

	"gorm.io/gorm"
)

var (
	ErrInvalidYear       = errors.New("invalid assessment year")
	ErrAlreadyAssessed   = errors.New("property already assessed for this year")
	ErrInvalidPayment    = errors.New("invalid payment amount")
	ErrAssessmentSettled = errors.New("assessment is already fully paid")
)

type Service interface {
	IssueAssessment(ctx context.Context, propertyID uint, year int, officerID uint) (*models.Assessment, error)
	ApplyPayment(ctx context.Context, assessmentID uint, amount float64) (*models.Assessment, error)
	OutstandingBalance(ctx context.Context, ownerID uint) (float64, error)
}

type service struct {
	db          *gorm.DB
	properties  repositories.PropertyRepository
	assessments repositories.AssessmentRepository
}

func NewService(db *gorm.DB, properties repositories.PropertyRepository, assessments repositories.AssessmentRepository) Service {
	return &service{
		db:          db,
		properties:  properties,
		assessments: assessments,
	}
}

// IssueAssessment raises the demand notice for one billing year. The
// amount due is rateableValue x rateImpost; any unpaid balance from the
// most recent prior assessment is carried forward as arrears.
func (s *service) IssueAssessment(ctx context.Context, propertyID uint, year int, officerID uint) (*models.Assessment, error) {
	currentYear := time.Now().Year()
	if year < 2000 || year > currentYear+1 {
		return nil, ErrInvalidYear
	}

	property, err := s.properties.GetByID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	if _, err := s.assessments.GetByPropertyYear(propertyID, year); err == nil {
		return nil, ErrAlreadyAssessed
	}

	var arrears float64
	prior, err := s.assessments.ListByProperty(propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prior assessments: %w", err)
	}
	for _, a := range prior {
		if a.Year < year {
			arrears += a.Balance()
		}
	}

	assessment := &models.Assessment{
		PropertyID: propertyID,
		Year:       year,
		AmountDue:  property.AnnualRate(),
		Arrears:    arrears,
		Status:     models.AssessmentStatusOutstanding,
		DueDate:    time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC),
		IssuedBy:   officerID,
	}
	if err := s.assessments.Create(assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return assessment, nil
}

// ApplyPayment credits a settled payment against an assessment inside a
// database transaction and advances its status.
func (s *service) ApplyPayment(ctx context.Context, assessmentID uint, amount float64) (*models.Assessment, error) {
	if amount <= 0 {
		return nil, ErrInvalidPayment
	}

	var updated *models.Assessment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var assessment models.Assessment
		if err := tx.First(&assessment, assessmentID).Error; err != nil {
			return fmt.Errorf("failed to load assessment: %w", err)
		}

		if assessment.Balance() <= 0 {
			return ErrAssessmentSettled
		}

		assessment.AmountPaid += amount
		switch {
		case assessment.Balance() <= 0:
			assessment.Status = models.AssessmentStatusPaid
		default:
			assessment.Status = models.AssessmentStatusPartPaid
		}

		if err := tx.Save(&assessment).Error; err != nil {
			return fmt.Errorf("failed to update assessment: %w", err)
		}
		updated = &assessment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// OutstandingBalance sums the unpaid balances for every assessment on
// an owner's properties.
func (s *service) OutstandingBalance(ctx context.Context, ownerID uint) (float64, error) {
	assessments, err := s.assessments.ListOutstandingByOwner(ownerID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, a := range assessments {
		total += a.Balance()
	}
	return total, nil
}
