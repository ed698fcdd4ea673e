package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded against products
const (
	AuditCreate        = "CREATE"
	AuditUpdate        = "UPDATE"
	AuditDelete        = "DELETE"
	AuditUpdateStorage = "UPDATE_STORAGE"
)

// ProductSnapshot captures the display fields of a product before/after a
// mutation. Storage is a pointer so stock-only entries can omit the rest.
type ProductSnapshot struct {
	Name         string `json:"name,omitempty"`
	Price        int64  `json:"price,omitempty"`
	InitialPrice int64  `json:"initialPrice,omitempty"`
	Storage      *int   `json:"storage,omitempty"`
	Image        string `json:"image,omitempty"`
}

// AuditLog is an append-only record of a product mutation
type AuditLog struct {
	BaseModel
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
	Action    string     `gorm:"type:varchar(20);not null" json:"action" validate:"required,oneof=CREATE UPDATE DELETE UPDATE_STORAGE"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Timestamp time.Time  `gorm:"not null" json:"timestamp"`

	OldData ProductSnapshot `gorm:"type:jsonb;serializer:json" json:"old_data"`
	NewData ProductSnapshot `gorm:"type:jsonb;serializer:json" json:"new_data"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// ProductName returns the current product name, falling back to the
// snapshots when the product row is gone.
func (a *AuditLog) ProductName() string {
	if a.Product != nil {
		return a.Product.Name
	}
	if a.NewData.Name != "" {
		return a.NewData.Name
	}
	return a.OldData.Name
}

// Describe returns a human readable description of the action, with the
// stock delta spelled out for storage updates.
func (a *AuditLog) Describe() string {
	switch a.Action {
	case AuditCreate:
		return "Created product"
	case AuditUpdate:
		return "Updated product details"
	case AuditDelete:
		return "Deleted product"
	case AuditUpdateStorage:
		oldStorage, newStorage := 0, 0
		if a.OldData.Storage != nil {
			oldStorage = *a.OldData.Storage
		}
		if a.NewData.Storage != nil {
			newStorage = *a.NewData.Storage
		}
		diff := newStorage - oldStorage
		if diff > 0 {
			return fmt.Sprintf("Received %d units into stock", diff)
		}
		if diff < 0 {
			return fmt.Sprintf("Removed %d units from stock", -diff)
		}
		return "Updated stock level (no change)"
	}
	return ""
}
