package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"go-sukem-pos/internal/mail"
	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"
	"go-sukem-pos/pkg/jwt"
	"go-sukem-pos/pkg/validator"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidRole        = errors.New("role must be 'manager' or 'worker'")
	ErrSelfRoleChange     = errors.New("cannot change your own role")
	ErrSelfPromote        = errors.New("cannot promote yourself")
	ErrInvalidResetCode   = errors.New("reset code is invalid or expired")
)

type AuthService interface {
	Register(req *RegisterRequest, callerRole string) (*model.UserResponse, error)
	Login(email, password string) (*LoginResponse, error)
	VerifyToken(userID uuid.UUID) (*model.UserResponse, error)
	ForgotPassword(email string) error
	VerifyResetCode(email, resetCode string) (string, error)
	ResetPassword(resetToken, newPassword string) error
	GetAllUsers() ([]model.UserResponse, error)
	UpdateUserRole(targetID uuid.UUID, role string, callerID uuid.UUID) error
	PromoteToManager(targetID uuid.UUID, callerID uuid.UUID) error
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=manager worker"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
}

func NewAuthService(userRepo repository.UserRepository, mailer mail.Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

func resetCodeExpireMinutes() int {
	if v := os.Getenv("RESET_CODE_EXPIRE_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m > 0 {
			return m
		}
	}
	return 15
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Register(req *RegisterRequest, callerRole string) (*model.UserResponse, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	existing, _ := s.userRepo.FindByEmail(req.Email)
	if existing != nil {
		return nil, ErrEmailExists
	}

	// Only an authenticated manager may create another manager
	role := req.Role
	if role == "" {
		role = model.RoleWorker
	}
	if role == model.RoleManager && callerRole != model.RoleManager {
		role = model.RoleWorker
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.Name, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) VerifyToken(userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *authService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	// 6-digit code, stored hashed so a DB dump doesn't leak usable codes
	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
	expireMinutes := resetCodeExpireMinutes()
	expiresAt := time.Now().Add(time.Duration(expireMinutes) * time.Minute)

	user.ResetPasswordToken = hashResetCode(code)
	user.ResetPasswordExpire = &expiresAt
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	return s.mailer.SendResetCode(user.Email, user.Name, code, expireMinutes)
}

func (s *authService) VerifyResetCode(email, resetCode string) (string, error) {
	user, err := s.userRepo.FindByResetToken(email, hashResetCode(resetCode))
	if err != nil {
		return "", ErrInvalidResetCode
	}

	return jwt.GenerateResetToken(user.ID, user.Email)
}

func (s *authService) ResetPassword(resetToken, newPassword string) error {
	claims, err := jwt.ValidateResetToken(resetToken)
	if err != nil {
		return err
	}

	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return ErrUserNotFound
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	return s.userRepo.Update(user)
}

func (s *authService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *authService) UpdateUserRole(targetID uuid.UUID, role string, callerID uuid.UUID) error {
	if role != model.RoleManager && role != model.RoleWorker {
		return ErrInvalidRole
	}

	// Self-lockout prevention
	if targetID == callerID {
		return ErrSelfRoleChange
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return ErrUserNotFound
	}

	return s.userRepo.UpdateRole(targetID, role)
}

func (s *authService) PromoteToManager(targetID uuid.UUID, callerID uuid.UUID) error {
	if targetID == callerID {
		return ErrSelfPromote
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return ErrUserNotFound
	}

	return s.userRepo.UpdateRole(targetID, model.RoleManager)
}
