package repository

import (
	"time"

	"go-sukem-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	CountForDay(tx *gorm.DB, day time.Time) (int64, error)
	Create(tx *gorm.DB, invoice *model.Invoice) error
	FindAll() ([]model.Invoice, error)
	FindByID(id uuid.UUID) (*model.Invoice, error)
	DeleteAll() (int64, error)
}

type invoiceRepo struct {
	db *gorm.DB
}

func NewInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &invoiceRepo{db}
}

// CountForDay counts invoices dated within the given calendar day. Runs on
// the supplied tx so the daily sequence is read inside the checkout
// transaction.
func (r *invoiceRepo) CountForDay(tx *gorm.DB, day time.Time) (int64, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	var count int64
	err := tx.Model(&model.Invoice{}).
		Where("date >= ? AND date < ?", startOfDay, endOfDay).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepo) Create(tx *gorm.DB, invoice *model.Invoice) error {
	return tx.Create(invoice).Error
}

func (r *invoiceRepo) FindAll() ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.Preload("User").Preload("Items").Order("date DESC").Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) FindByID(id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.Preload("User").Preload("Items").First(&invoice, "id = ?", id).Error
	return &invoice, err
}

func (r *invoiceRepo) DeleteAll() (int64, error) {
	if err := r.db.Unscoped().Where("1 = 1").Delete(&model.InvoiceItem{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Unscoped().Where("1 = 1").Delete(&model.Invoice{})
	return result.RowsAffected, result.Error
}
