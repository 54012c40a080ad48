package repositories

import (
	"errors"

	"mmdapay/internal/models"

	"gorm.io/gorm"
)

var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentRepository handles demand notice persistence.
type AssessmentRepository interface {
	Create(assessment *models.Assessment) error
	GetByID(id uint) (*models.Assessment, error)
	GetByPropertyYear(propertyID uint, year int) (*models.Assessment, error)
	ListByProperty(propertyID uint) ([]models.Assessment, error)
	ListOutstandingByOwner(ownerID uint) ([]models.Assessment, error)
	Update(assessment *models.Assessment) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *models.Assessment) error {
	return r.db.Create(assessment).Error
}

func (r *assessmentRepository) GetByID(id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := r.db.Preload("Property").First(&assessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) GetByPropertyYear(propertyID uint, year int) (*models.Assessment, error) {
	var assessment models.Assessment
	err := r.db.Where("property_id = ? AND year = ?", propertyID, year).First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssessmentNotFound
		}
		return nil, err
	}
	return &assessment, nil
}

func (r *assessmentRepository) ListByProperty(propertyID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.Where("property_id = ?", propertyID).Order("year desc").Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) ListOutstandingByOwner(ownerID uint) ([]models.Assessment, error) {
	var assessments []models.Assessment
	err := r.db.
		Joins("JOIN properties ON properties.id = assessments.property_id").
		Where("properties.owner_id = ? AND assessments.status <> ?", ownerID, models.AssessmentStatusPaid).
		Order("assessments.year").
		Find(&assessments).Error
	return assessments, err
}

func (r *assessmentRepository) Update(assessment *models.Assessment) error {
	return r.db.Save(assessment).Error
}
