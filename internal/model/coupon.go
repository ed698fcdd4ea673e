package model

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const couponCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CouponCodeLength is the fixed length of generated codes
const CouponCodeLength = 8

// Coupon is a single-use discount code minted after a qualifying sale
type Coupon struct {
	BaseModel
	Code            string `gorm:"type:varchar(8);uniqueIndex;not null" json:"code" validate:"required,len=8"`
	DiscountPercent int    `gorm:"not null" json:"discountPercent" validate:"required,gte=1,lte=30"`
	MinOrderValue   int64  `gorm:"not null;default:0" json:"minOrderValue" validate:"gte=0"`
	IsUsed          bool   `gorm:"not null;default:false" json:"isUsed"`

	ExpiryDate time.Time `gorm:"not null;index" json:"expiryDate" validate:"required"`

	CreatedFromInvoiceID uuid.UUID `gorm:"type:uuid;not null" json:"createdFromInvoice" validate:"uuid_required"`
	CreatedFromInvoice   *Invoice  `gorm:"foreignKey:CreatedFromInvoiceID" json:"createdFromInvoiceDetail,omitempty" validate:"-"`

	UsedInInvoiceID *uuid.UUID `gorm:"type:uuid" json:"usedInInvoice,omitempty"`
	UsedInInvoice   *Invoice   `gorm:"foreignKey:UsedInInvoiceID" json:"usedInInvoiceDetail,omitempty" validate:"-"`
	UsedDate        *time.Time `json:"usedDate,omitempty"`
}

// IsValid reports whether the coupon can still be redeemed
func (c *Coupon) IsValid() bool {
	return !c.IsUsed && !time.Now().After(c.ExpiryDate)
}

// DiscountAmount computes the discount for a given order total
func (c *Coupon) DiscountAmount(totalAmount int64) int64 {
	return int64(float64(totalAmount)*float64(c.DiscountPercent)/100 + 0.5)
}

// GenerateCouponCode returns a random 8-character code from [A-Z0-9]
func GenerateCouponCode() string {
	var sb strings.Builder
	sb.Grow(CouponCodeLength)
	for i := 0; i < CouponCodeLength; i++ {
		sb.WriteByte(couponCodeChars[rand.Intn(len(couponCodeChars))])
	}
	return sb.String()
}

// CalculateDiscountPercent maps a pre-discount invoice total to the reward
// tier. Zero means the sale does not earn a coupon.
func CalculateDiscountPercent(totalAmount int64) int {
	switch {
	case totalAmount >= 3000000:
		return 30
	case totalAmount >= 2000000:
		return 25
	case totalAmount >= 1500000:
		return 20
	case totalAmount >= 1000000:
		return 15
	case totalAmount >= 500000:
		return 10
	default:
		return 0
	}
}
