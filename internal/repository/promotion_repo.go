package repository

import (
	"errors"
	"time"

	"go-sukem-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromotionRepository interface {
	Create(promotion *model.Promotion) error
	FindAll() ([]model.Promotion, error)
	FindByID(id uuid.UUID) (*model.Promotion, error)
	FindActiveForProduct(productID uuid.UUID, at time.Time) (*model.Promotion, error)
	HasOverlap(productID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	Update(promotion *model.Promotion) error
	Delete(id uuid.UUID) error
}

type promotionRepo struct {
	db *gorm.DB
}

func NewPromotionRepo(db *gorm.DB) PromotionRepository {
	return &promotionRepo{db}
}

func (r *promotionRepo) Create(promotion *model.Promotion) error {
	return r.db.Create(promotion).Error
}

func (r *promotionRepo) FindAll() ([]model.Promotion, error) {
	var promotions []model.Promotion
	err := r.db.Preload("Product").Order("created_at DESC").Find(&promotions).Error
	return promotions, err
}

func (r *promotionRepo) FindByID(id uuid.UUID) (*model.Promotion, error) {
	var promotion model.Promotion
	err := r.db.Preload("Product").First(&promotion, "id = ?", id).Error
	return &promotion, err
}

// FindActiveForProduct returns the promotion whose active window covers the
// given instant, or nil when the product has none.
func (r *promotionRepo) FindActiveForProduct(productID uuid.UUID, at time.Time) (*model.Promotion, error) {
	var promotion model.Promotion
	err := r.db.Preload("Product").
		Where("product_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?", productID, true, at, at).
		First(&promotion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

// HasOverlap reports whether an active promotion for the product intersects
// the [start, end] window. excludeID skips the promotion being updated.
func (r *promotionRepo) HasOverlap(productID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := r.db.Model(&model.Promotion{}).
		Where("product_id = ? AND is_active = ? AND start_date <= ? AND end_date >= ?", productID, true, end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *promotionRepo) Update(promotion *model.Promotion) error {
	return r.db.Save(promotion).Error
}

func (r *promotionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Promotion{}, "id = ?", id).Error
}
