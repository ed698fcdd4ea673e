package handler

import (
	"errors"

	"go-sukem-pos/internal/repository"
	"go-sukem-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CouponHandler struct {
	service service.CouponService
}

func NewCouponHandler(s service.CouponService) *CouponHandler {
	return &CouponHandler{service: s}
}

type ApplyCouponRequest struct {
	Code        string `json:"code"`
	TotalAmount *int64 `json:"totalAmount"`
}

// GetCoupons lists coupons, optionally filtered by isUsed / isExpired
// GET /api/coupons
func (h *CouponHandler) GetCoupons(c *fiber.Ctx) error {
	var filter repository.CouponFilter

	if v := c.Query("isUsed"); v != "" {
		used := v == "true"
		filter.IsUsed = &used
	}
	if v := c.Query("isExpired"); v != "" {
		expired := v == "true"
		filter.IsExpired = &expired
	}

	coupons, err := h.service.GetCoupons(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"success": true, "data": coupons})
}

// ApplyCoupon quotes the discount for a cart total without consuming the code
// POST /api/coupons/apply
func (h *CouponHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" || req.TotalAmount == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Coupon code and total amount are required"})
	}

	result, err := h.service.ApplyCoupon(req.Code, *req.TotalAmount)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": result})
}

// GetCouponByCode looks a coupon up by code
// GET /api/coupons/:code
func (h *CouponHandler) GetCouponByCode(c *fiber.Ctx) error {
	coupon, err := h.service.GetCouponByCode(c.Params("code"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Coupon not found"})
	}

	return c.JSON(fiber.Map{"success": true, "data": coupon})
}

// DeleteCoupon removes an unused coupon
// DELETE /api/coupons/:id
func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	couponID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "Invalid coupon ID"})
	}

	if err := h.service.DeleteCoupon(couponID); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Coupon deleted"})
}
