package handler

import (
	"errors"

	"go-sukem-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetCodeRequest struct {
	Email     string `json:"email"`
	ResetCode string `json:"resetCode"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken"`
	NewPassword string `json:"newPassword"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Register handles user registration
// POST /api/authen/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	// Role of the caller, empty when unauthenticated. Only a manager can
	// register another manager.
	user, err := h.authService.Register(&req, getUserRole(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "data": user, "message": "Registration successful"})
}

// Login handles user authentication
// POST /api/authen/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "token": response.Token, "user": response.User, "message": "Login successful"})
}

// VerifyToken returns the user behind a valid bearer token
// GET /api/authen/verify-token
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	userID := getUserID(c)
	if userID == uuid.Nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Not authenticated"})
	}

	user, err := h.authService.VerifyToken(userID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

// ForgotPassword generates and delivers a reset code
// POST /api/authen/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Email is required"})
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": "Email is not registered"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to send reset code"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password reset code has been sent"})
}

// VerifyResetCode exchanges a valid code for a short-lived reset token
// POST /api/authen/verify-reset-code
func (h *AuthHandler) VerifyResetCode(c *fiber.Ctx) error {
	var req VerifyResetCodeRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.ResetCode == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Email and reset code are required"})
	}

	token, err := h.authService.VerifyResetCode(req.Email, req.ResetCode)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Reset code is invalid or expired"})
	}

	return c.JSON(fiber.Map{"success": true, "resetToken": token, "message": "Reset code verified"})
}

// ResetPassword sets a new password using the reset token
// POST /api/authen/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil || req.ResetToken == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Reset token and new password are required"})
	}

	if err := h.authService.ResetPassword(req.ResetToken, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": "User not found"})
		}
		return c.Status(401).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password has been reset"})
}

// GetUsers returns all users (manager only)
// GET /api/authen/users
func (h *AuthHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.authService.GetAllUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "message": "Failed to fetch users"})
	}
	return c.JSON(fiber.Map{"success": true, "data": users})
}

// UpdateUserRole changes a user's role (manager only, not self)
// PUT /api/authen/users/:id/role
func (h *AuthHandler) UpdateUserRole(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid user ID"})
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	if err := h.authService.UpdateUserRole(targetID, req.Role, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User role updated to " + req.Role})
}

// PromoteToManager promotes a user to manager (manager only, not self)
// PUT /api/authen/promote/:id
func (h *AuthHandler) PromoteToManager(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid user ID"})
	}

	if err := h.authService.PromoteToManager(targetID, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User promoted to manager"})
}
