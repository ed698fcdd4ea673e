package handler

import (
	"fmt"
	"time"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// AuditHandler reads the repo directly, there is no business logic to wrap
type AuditHandler struct {
	auditRepo repository.AuditRepository
}

func NewAuditHandler(auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// FormattedAuditLog is the shape the admin UI renders
type FormattedAuditLog struct {
	User              string    `json:"user"`
	Product           string    `json:"product"`
	Action            string    `json:"action"`
	ActionDescription string    `json:"actionDescription"`
	Timestamp         time.Time `json:"timestamp"`
	Changes           struct {
		Old model.ProductSnapshot `json:"old"`
		New model.ProductSnapshot `json:"new"`
	} `json:"changes"`
}

// GetAuditLogs returns formatted logs, newest first
// GET /api/audit
func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	logs, err := h.auditRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to fetch audit logs"})
	}

	formatted := make([]FormattedAuditLog, len(logs))
	for i, entry := range logs {
		f := FormattedAuditLog{
			Product:           entry.ProductName(),
			Action:            entry.Action,
			ActionDescription: entry.Describe(),
			Timestamp:         entry.Timestamp,
		}
		if entry.User != nil {
			f.User = entry.User.Name
		} else {
			f.User = "User no longer exists"
		}
		f.Changes.Old = entry.OldData
		f.Changes.New = entry.NewData
		formatted[i] = f
	}

	return c.JSON(fiber.Map{"success": true, "data": formatted})
}

// DeleteAuditLogs purges the log table
// DELETE /api/audit
func (h *AuditHandler) DeleteAuditLogs(c *fiber.Ctx) error {
	count, err := h.auditRepo.DeleteAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to delete audit logs"})
	}

	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("Deleted %d audit logs", count)})
}
