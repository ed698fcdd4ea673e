package repository

import (
	"go-sukem-pos/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(log *model.AuditLog) error
	FindAll() ([]model.AuditLog, error)
	DeleteAll() (int64, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Create(log *model.AuditLog) error {
	return r.db.Create(log).Error
}

func (r *auditRepo) FindAll() ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.Preload("User").Preload("Product").Order("timestamp DESC").Find(&logs).Error
	return logs, err
}

func (r *auditRepo) DeleteAll() (int64, error) {
	// Hard delete, the log table is append-only until a manager purges it
	result := r.db.Unscoped().Where("1 = 1").Delete(&model.AuditLog{})
	return result.RowsAffected, result.Error
}
