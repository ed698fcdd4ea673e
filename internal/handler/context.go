package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull user info from the JWT context (set by RequireAuth)

func getUserID(c *fiber.Ctx) uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func getUserName(c *fiber.Ctx) string {
	name, ok := c.Locals("user_name").(string)
	if !ok {
		return "Unknown"
	}
	return name
}

func getUserRole(c *fiber.Ctx) string {
	role, ok := c.Locals("user_role").(string)
	if !ok {
		return ""
	}
	return role
}
