package repository

import (
	"time"

	"go-sukem-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponFilter narrows coupon listings
type CouponFilter struct {
	IsUsed    *bool
	IsExpired *bool
}

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	Find(filter CouponFilter) ([]model.Coupon, error)
	FindByID(id uuid.UUID) (*model.Coupon, error)
	FindByCode(code string) (*model.Coupon, error)
	CodeExists(code string) (bool, error)
	Delete(id uuid.UUID) error
}

type couponRepo struct {
	db *gorm.DB
}

func NewCouponRepo(db *gorm.DB) CouponRepository {
	return &couponRepo{db}
}

func (r *couponRepo) Create(coupon *model.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *couponRepo) Find(filter CouponFilter) ([]model.Coupon, error) {
	query := r.db.Model(&model.Coupon{}).
		Preload("CreatedFromInvoice").
		Preload("UsedInInvoice")

	if filter.IsUsed != nil {
		query = query.Where("is_used = ?", *filter.IsUsed)
	}
	if filter.IsExpired != nil {
		now := time.Now()
		if *filter.IsExpired {
			query = query.Where("expiry_date < ?", now)
		} else {
			query = query.Where("expiry_date >= ?", now)
		}
	}

	var coupons []model.Coupon
	err := query.Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *couponRepo) FindByID(id uuid.UUID) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.First(&coupon, "id = ?", id).Error
	return &coupon, err
}

func (r *couponRepo) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.
		Preload("CreatedFromInvoice").
		Preload("UsedInInvoice").
		First(&coupon, "code = ?", code).Error
	return &coupon, err
}

func (r *couponRepo) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Coupon{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *couponRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Coupon{}, "id = ?", id).Error
}
