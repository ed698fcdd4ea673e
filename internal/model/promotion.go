package model

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is a scheduled percentage discount on one product's display
// price. Active windows for the same product must not overlap.
type Promotion struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`

	DiscountPercent int       `gorm:"not null" json:"discountPercent" validate:"required,gte=1,lte=100"`
	StartDate       time.Time `gorm:"not null;index" json:"startDate" validate:"required"`
	EndDate         time.Time `gorm:"not null;index" json:"endDate" validate:"required"`
	IsActive        bool      `gorm:"not null;default:true" json:"isActive"`

	Title       string `gorm:"type:varchar(100);not null" json:"title" validate:"required,max=100"`
	Description string `gorm:"type:varchar(500)" json:"description" validate:"max=500"`
}

// IsValidNow reports whether the promotion window covers the current time
func (p *Promotion) IsValidNow() bool {
	return p.ActiveAt(time.Now())
}

// ActiveAt reports whether the promotion applies at the given instant
func (p *Promotion) ActiveAt(t time.Time) bool {
	return p.IsActive && !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// PromoPrice returns the discounted display price, rounded to the nearest
// whole amount.
func (p *Promotion) PromoPrice(price int64) int64 {
	return int64(float64(price)*(1-float64(p.DiscountPercent)/100) + 0.5)
}

// Overlaps reports whether two date windows intersect (inclusive bounds)
func (p *Promotion) Overlaps(start, end time.Time) bool {
	return !p.StartDate.After(end) && !p.EndDate.Before(start)
}
