package handler

import (
	"errors"
	"fmt"

	"go-sukem-pos/internal/service"
	"go-sukem-pos/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	service service.InvoiceService
}

func NewInvoiceHandler(s service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

// CreateInvoice runs checkout
// POST /api/invoices
func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	invoice, err := h.service.CreateInvoice(&req, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock),
			errors.Is(err, service.ErrInvalidCoupon),
			errors.Is(err, validator.ErrValidation):
			return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Server error: " + err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": invoice})
}

// GetInvoices lists all invoices, newest first
// GET /api/invoices
func (h *InvoiceHandler) GetInvoices(c *fiber.Ctx) error {
	invoices, err := h.service.GetAllInvoices()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": invoices})
}

// GetInvoice returns a single invoice
// GET /api/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Invalid invoice ID"})
	}

	invoice, err := h.service.GetInvoiceByID(invoiceID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Invoice not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": invoice})
}

// DeleteInvoices bulk-deletes all invoices
// DELETE /api/invoices
func (h *InvoiceHandler) DeleteInvoices(c *fiber.Ctx) error {
	count, err := h.service.DeleteAllInvoices()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to delete invoices"})
	}

	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("Deleted %d invoices", count)})
}
