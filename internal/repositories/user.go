package repositories

import (
	"context"
	"errors"
	"log"

	"mmdapay/internal/models"
	"mmdapay/internal/repositories/cache"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository handles taxpayer and staff account persistence.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByTIN(tin string) (*models.User, error)
	Update(user *models.User) error
	IncrementTokenVersion(id uint) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

func NewUserRepository(db *gorm.DB, cacheSvc *cache.CacheService) UserRepository {
	return &userRepository{db: db, cache: cacheSvc}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User

	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if found, err := r.cache.Get(context.Background(), key, &user); err == nil && found {
			return &user, nil
		}
	}

	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		key := r.cache.GenerateKey("user", "id", id)
		if err := r.cache.Set(context.Background(), key, &user); err != nil {
			log.Printf("failed to cache user %d: %v", id, err)
		}
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByTIN(tin string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("tin = ?", tin).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return err
	}
	r.invalidate(user.ID)
	return nil
}

func (r *userRepository) IncrementTokenVersion(id uint) error {
	err := r.db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *userRepository) invalidate(id uint) {
	if r.cache == nil {
		return
	}
	key := r.cache.GenerateKey("user", "id", id)
	if err := r.cache.Delete(context.Background(), key); err != nil {
		log.Printf("failed to invalidate user %d: %v", id, err)
	}
}
