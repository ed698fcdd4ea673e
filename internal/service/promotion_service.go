package service

import (
	"errors"
	"time"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"
	"go-sukem-pos/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrPromotionOverlap  = errors.New("product already has an active promotion in this date range")
	ErrInvalidDateRange  = errors.New("end date must be after start date")
)

// PromotionUpdateRequest carries optional fields; nil means keep current
type PromotionUpdateRequest struct {
	ProductID       *uuid.UUID `json:"productId"`
	DiscountPercent *int       `json:"discountPercent" validate:"omitempty,gte=1,lte=100"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsActive        *bool      `json:"isActive"`
	Title           *string    `json:"title" validate:"omitempty,max=100"`
	Description     *string    `json:"description" validate:"omitempty,max=500"`
}

type PromotionService interface {
	GetPromotions() ([]model.Promotion, error)
	GetActiveForProduct(productID uuid.UUID) (*model.Promotion, error)
	CreatePromotion(req *model.Promotion, actorID uuid.UUID) (*model.Promotion, error)
	UpdatePromotion(id uuid.UUID, req *PromotionUpdateRequest, actorID uuid.UUID) (*model.Promotion, error)
	DeletePromotion(id uuid.UUID) error
}

type promotionService struct {
	promotionRepo repository.PromotionRepository
	productRepo   repository.ProductRepository
}

func NewPromotionService(promoRepo repository.PromotionRepository, productRepo repository.ProductRepository) PromotionService {
	return &promotionService{
		promotionRepo: promoRepo,
		productRepo:   productRepo,
	}
}

func (s *promotionService) GetPromotions() ([]model.Promotion, error) {
	return s.promotionRepo.FindAll()
}

func (s *promotionService) GetActiveForProduct(productID uuid.UUID) (*model.Promotion, error) {
	return s.promotionRepo.FindActiveForProduct(productID, time.Now())
}

func (s *promotionService) CreatePromotion(req *model.Promotion, actorID uuid.UUID) (*model.Promotion, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	overlap, err := s.promotionRepo.HasOverlap(req.ProductID, req.StartDate, req.EndDate, nil)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrPromotionOverlap
	}

	req.CreatedBy = actorID.String()
	req.UpdatedBy = actorID.String()

	if err := s.promotionRepo.Create(req); err != nil {
		return nil, err
	}

	return s.promotionRepo.FindByID(req.ID)
}

func (s *promotionService) UpdatePromotion(id uuid.UUID, req *PromotionUpdateRequest, actorID uuid.UUID) (*model.Promotion, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	existing, err := s.promotionRepo.FindByID(id)
	if err != nil {
		return nil, ErrPromotionNotFound
	}

	if req.ProductID != nil {
		if _, err := s.productRepo.FindByID(*req.ProductID); err != nil {
			return nil, ErrProductNotFound
		}
		existing.ProductID = *req.ProductID
	}
	if req.DiscountPercent != nil {
		existing.DiscountPercent = *req.DiscountPercent
	}
	if req.StartDate != nil {
		existing.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		existing.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	if !existing.EndDate.After(existing.StartDate) {
		return nil, ErrInvalidDateRange
	}

	// Re-check overlap whenever product or window may have moved
	if req.ProductID != nil || req.StartDate != nil || req.EndDate != nil {
		overlap, err := s.promotionRepo.HasOverlap(existing.ProductID, existing.StartDate, existing.EndDate, &id)
		if err != nil {
			return nil, err
		}
		if overlap {
			return nil, ErrPromotionOverlap
		}
	}

	existing.UpdatedBy = actorID.String()
	existing.Product = nil // Avoid re-saving the preloaded association

	if err := s.promotionRepo.Update(existing); err != nil {
		return nil, err
	}

	return s.promotionRepo.FindByID(id)
}

func (s *promotionService) DeletePromotion(id uuid.UUID) error {
	if _, err := s.promotionRepo.FindByID(id); err != nil {
		return ErrPromotionNotFound
	}
	return s.promotionRepo.Delete(id)
}
