package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at checkout
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
)

// Invoice is a completed sale. Immutable after creation: there is no update
// endpoint, only bulk deletion.
type Invoice struct {
	BaseModel
	InvoiceNumber string `gorm:"type:varchar(10);uniqueIndex;not null" json:"invoiceNumber"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId" validate:"uuid_required"`
	User   *User     `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"products" validate:"required,min=1,dive"`

	TotalAmount    int64 `gorm:"not null" json:"totalAmount" validate:"gte=0"`
	OriginalAmount int64 `json:"originalAmount,omitempty"` // Pre-discount total; 0 means same as TotalAmount

	PaymentMethod string `gorm:"type:varchar(20);not null" json:"paymentMethod" validate:"required,oneof=CASH TRANSFER"`
	PaymentStatus string `gorm:"type:varchar(20)" json:"paymentStatus"`
	Note          string `gorm:"type:text" json:"note"`

	// Coupon code consumed by this sale, if any
	CouponCode string    `gorm:"type:varchar(8)" json:"couponCode,omitempty"`
	Date       time.Time `gorm:"not null;index" json:"date"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line on an invoice, snapshotting the product's display
// fields at time of purchase.
type InvoiceItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"productId" validate:"uuid_required"`
	ProductName string    `gorm:"type:varchar(40);not null" json:"productName"`
	Price       int64     `gorm:"not null" json:"price" validate:"gte=0"`
	Quantity    int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// FormatInvoiceNumber builds the DDMM-NN daily sequence number. seq is the
// 1-based position of the invoice within its day.
func FormatInvoiceNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%02d%02d-%02d", day.Day(), int(day.Month()), seq)
}

// PreDiscountTotal returns the amount coupon tiers are judged against.
func (i *Invoice) PreDiscountTotal() int64 {
	if i.OriginalAmount > 0 {
		return i.OriginalAmount
	}
	return i.TotalAmount
}
