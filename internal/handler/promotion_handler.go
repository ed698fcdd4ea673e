package handler

import (
	"errors"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PromotionHandler struct {
	service service.PromotionService
}

func NewPromotionHandler(s service.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: s}
}

// GetPromotions lists all promotions, newest first
// GET /api/promotions
func (h *PromotionHandler) GetPromotions(c *fiber.Ctx) error {
	promotions, err := h.service.GetPromotions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"success": true, "data": promotions})
}

// GetPromotionByProduct returns the promotion currently active for a product
// GET /api/promotions/product/:productId
func (h *PromotionHandler) GetPromotionByProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid product ID"})
	}

	promotion, err := h.service.GetActiveForProduct(productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}

	// data is null when no promotion covers the current time
	return c.JSON(fiber.Map{"success": true, "data": promotion})
}

// CreatePromotion schedules a discount window for a product
// POST /api/promotions
func (h *PromotionHandler) CreatePromotion(c *fiber.Ctx) error {
	var promotion model.Promotion
	if err := c.BodyParser(&promotion); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	created, err := h.service.CreatePromotion(&promotion, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": created})
}

// UpdatePromotion edits a promotion, re-checking window overlap
// PUT /api/promotions/:id
func (h *PromotionHandler) UpdatePromotion(c *fiber.Ctx) error {
	promotionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Invalid promotion ID"})
	}

	var req service.PromotionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	updated, err := h.service.UpdatePromotion(promotionID, &req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) || errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": updated})
}

// DeletePromotion removes a promotion
// DELETE /api/promotions/:id
func (h *PromotionHandler) DeletePromotion(c *fiber.Ctx) error {
	promotionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Invalid promotion ID"})
	}

	if err := h.service.DeletePromotion(promotionID); err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Promotion deleted"})
}
