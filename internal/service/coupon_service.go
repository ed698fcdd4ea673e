package service

import (
	"errors"
	"strings"
	"time"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponUsed        = errors.New("coupon has already been used")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrOrderBelowMin     = errors.New("order total is below the coupon's minimum")
	ErrCouponUndeletable = errors.New("cannot delete a used coupon")
	ErrCodeGeneration    = errors.New("could not generate a unique coupon code")
)

// Reward coupons expire this many days after the qualifying sale
const couponValidityDays = 30

// Collision retries when minting a code
const maxCodeAttempts = 10

// ApplyResult is the quote returned by the apply endpoint. It does not
// consume the coupon; consumption happens inside the checkout transaction.
type ApplyResult struct {
	Code            string    `json:"code"`
	DiscountPercent int       `json:"discountPercent"`
	DiscountAmount  int64     `json:"discountAmount"`
	OriginalAmount  int64     `json:"originalAmount"`
	FinalAmount     int64     `json:"finalAmount"`
	ExpiryDate      time.Time `json:"expiryDate"`
}

type CouponService interface {
	GetCoupons(filter repository.CouponFilter) ([]model.Coupon, error)
	ApplyCoupon(code string, totalAmount int64) (*ApplyResult, error)
	GetCouponByCode(code string) (*model.Coupon, error)
	DeleteCoupon(id uuid.UUID) error
	MintForInvoice(invoiceID uuid.UUID, preDiscountTotal int64) (*model.Coupon, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) GetCoupons(filter repository.CouponFilter) ([]model.Coupon, error) {
	return s.couponRepo.Find(filter)
}

func (s *couponService) ApplyCoupon(code string, totalAmount int64) (*ApplyResult, error) {
	coupon, err := s.couponRepo.FindByCode(strings.ToUpper(code))
	if err != nil {
		return nil, ErrCouponNotFound
	}

	if coupon.IsUsed {
		return nil, ErrCouponUsed
	}
	if !coupon.IsValid() {
		return nil, ErrCouponExpired
	}
	if totalAmount < coupon.MinOrderValue {
		return nil, ErrOrderBelowMin
	}

	discount := coupon.DiscountAmount(totalAmount)
	return &ApplyResult{
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		DiscountAmount:  discount,
		OriginalAmount:  totalAmount,
		FinalAmount:     totalAmount - discount,
		ExpiryDate:      coupon.ExpiryDate,
	}, nil
}

func (s *couponService) GetCouponByCode(code string) (*model.Coupon, error) {
	coupon, err := s.couponRepo.FindByCode(strings.ToUpper(code))
	if err != nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

func (s *couponService) DeleteCoupon(id uuid.UUID) error {
	coupon, err := s.couponRepo.FindByID(id)
	if err != nil {
		return ErrCouponNotFound
	}

	if coupon.IsUsed {
		return ErrCouponUndeletable
	}

	return s.couponRepo.Delete(id)
}

// MintForInvoice creates a reward coupon for a qualifying sale. Returns
// (nil, nil) when the total does not reach the lowest tier.
func (s *couponService) MintForInvoice(invoiceID uuid.UUID, preDiscountTotal int64) (*model.Coupon, error) {
	percent := model.CalculateDiscountPercent(preDiscountTotal)
	if percent == 0 {
		return nil, nil
	}

	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := model.GenerateCouponCode()
		exists, err := s.couponRepo.CodeExists(candidate)
		if err != nil {
			return nil, err
		}
		if !exists {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, ErrCodeGeneration
	}

	coupon := &model.Coupon{
		Code:                 code,
		DiscountPercent:      percent,
		MinOrderValue:        0, // Reward coupons have no order floor
		ExpiryDate:           time.Now().AddDate(0, 0, couponValidityDays),
		CreatedFromInvoiceID: invoiceID,
	}

	if err := s.couponRepo.Create(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}
