package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"
	"go-sukem-pos/internal/ws"
	"go-sukem-pos/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameExists      = errors.New("product name already exists")
	ErrInvalidQuantity = errors.New("quantity must be zero or positive")
)

// ProductUpdateRequest carries optional fields; nil means keep current.
// Storage is deliberately absent: stock moves only through receipt and
// checkout.
type ProductUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=40"`
	Price        *int64  `json:"price" validate:"omitempty,gte=1,lte=1000000000"`
	InitialPrice *int64  `json:"initialPrice" validate:"omitempty,gte=1,lte=1000000000"`
	Image        *string `json:"image" validate:"omitempty,min=1"`
}

type ProductService interface {
	GetAllProducts() ([]model.Product, error)
	CreateProduct(req *model.Product, actorID uuid.UUID, actorName string) error
	UpdateProduct(id uuid.UUID, req *ProductUpdateRequest, actorID uuid.UUID, actorName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actorID uuid.UUID, actorName string) error
	ReceiveStock(id uuid.UUID, quantity int, actorID uuid.UUID, actorName string) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, aRepo repository.AuditRepository, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		auditRepo:   aRepo,
		wsHub:       hub,
	}
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) CreateProduct(req *model.Product, actorID uuid.UUID, actorName string) error {
	if err := validator.FirstError(req); err != nil {
		return err
	}

	existing, _ := s.productRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrNameExists
	}

	req.CreatedBy = actorID.String()
	req.UpdatedBy = actorID.String()

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.writeAudit(actorID, model.AuditCreate, req.ID, model.ProductSnapshot{}, req.Snapshot())

	go s.wsHub.BroadcastEvent(ws.EventStockUpdate, map[string]interface{}{
		"action":  "product_created",
		"product": map[string]interface{}{"id": req.ID, "name": req.Name, "storage": req.Storage, "price": req.Price},
		"message": fmt.Sprintf("%s created product '%s'", actorName, req.Name),
	})

	return nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *ProductUpdateRequest, actorID uuid.UUID, actorName string) (*model.Product, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	before := existing.Snapshot()

	if req.Name != nil && *req.Name != existing.Name {
		dup, _ := s.productRepo.FindByName(*req.Name)
		if dup != nil && dup.ID != uuid.Nil && dup.ID != id {
			return nil, ErrNameExists
		}
		existing.Name = *req.Name
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.InitialPrice != nil {
		existing.InitialPrice = *req.InitialPrice
	}
	if req.Image != nil {
		existing.Image = *req.Image
	}
	existing.UpdatedBy = actorID.String()

	if err := validator.FirstError(existing); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.writeAudit(actorID, model.AuditUpdate, existing.ID, before, existing.Snapshot())

	go s.wsHub.BroadcastEvent(ws.EventStockUpdate, map[string]interface{}{
		"action":  "product_updated",
		"product": map[string]interface{}{"id": existing.ID, "name": existing.Name, "storage": existing.Storage, "price": existing.Price},
		"message": fmt.Sprintf("%s updated product '%s'", actorName, existing.Name),
	})

	return existing, nil
}

func (s *productService) DeleteProduct(id uuid.UUID, actorID uuid.UUID, actorName string) error {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}

	before := existing.Snapshot()

	if err := s.productRepo.Delete(id, actorID.String()); err != nil {
		return err
	}

	s.writeAudit(actorID, model.AuditDelete, id, before, model.ProductSnapshot{})

	go s.wsHub.BroadcastEvent(ws.EventStockUpdate, map[string]interface{}{
		"action":  "product_deleted",
		"product": map[string]interface{}{"id": id, "name": existing.Name},
		"message": fmt.Sprintf("%s deleted product '%s'", actorName, existing.Name),
	})

	return nil
}

// ReceiveStock adds quantity to the product's storage. Receipt is additive
// only; stock is decremented exclusively through checkout.
func (s *productService) ReceiveStock(id uuid.UUID, quantity int, actorID uuid.UUID, actorName string) (*model.Product, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	oldStorage := existing.Storage
	existing.Storage = oldStorage + quantity
	existing.UpdatedBy = actorID.String()

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	newStorage := existing.Storage
	s.writeAudit(actorID, model.AuditUpdateStorage, id,
		model.ProductSnapshot{Storage: &oldStorage},
		model.ProductSnapshot{Storage: &newStorage})

	go s.wsHub.BroadcastEvent(ws.EventStockUpdate, map[string]interface{}{
		"action":  "stock_received",
		"product": map[string]interface{}{"id": id, "name": existing.Name, "old_storage": oldStorage, "new_storage": newStorage},
		"message": fmt.Sprintf("%s received %d units of '%s'", actorName, quantity, existing.Name),
	})

	return existing, nil
}

func (s *productService) writeAudit(actorID uuid.UUID, action string, productID uuid.UUID, oldData, newData model.ProductSnapshot) {
	entry := &model.AuditLog{
		UserID:    &actorID,
		Action:    action,
		ProductID: productID,
		Timestamp: time.Now(),
		OldData:   oldData,
		NewData:   newData,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		// The mutation already happened; only log the failure
		log.Println("failed to write audit log:", err)
	}
}
