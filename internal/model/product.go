package model

type Product struct {
	BaseModel
	Name         string `gorm:"type:varchar(40);uniqueIndex;not null" json:"name" validate:"required,min=1,max=40"`
	Price        int64  `gorm:"not null" json:"price" validate:"required,gte=1,lte=1000000000"`
	InitialPrice int64  `gorm:"not null" json:"initialPrice" validate:"required,gte=1,lte=1000000000"`
	Storage      int    `gorm:"not null;default:0" json:"storage" validate:"gte=0"` // Stock on hand, never negative
	Image        string `gorm:"type:text;not null" json:"image" validate:"required"`
}

// Snapshot captures the display fields for audit logging. Storage is
// copied so a "before" snapshot stays fixed when the product mutates.
func (p *Product) Snapshot() ProductSnapshot {
	storage := p.Storage
	return ProductSnapshot{
		Name:         p.Name,
		Price:        p.Price,
		InitialPrice: p.InitialPrice,
		Storage:      &storage,
		Image:        p.Image,
	}
}
