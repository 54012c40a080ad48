package repositories

import (
	"errors"

	"mmdapay/internal/models"

	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyRepository handles rateable property persistence.
type PropertyRepository interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetByParcelNumber(parcel string) (*models.Property, error)
	ListByOwner(ownerID uint) ([]models.Property, error)
	Update(property *models.Property) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(property *models.Property) error {
	return r.db.Create(property).Error
}

func (r *propertyRepository) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) GetByParcelNumber(parcel string) (*models.Property, error) {
	var property models.Property
	if err := r.db.Where("parcel_number = ?", parcel).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ListByOwner(ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	err := r.db.Where("owner_id = ?", ownerID).Order("parcel_number").Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Update(property *models.Property) error {
	return r.db.Save(property).Error
}
