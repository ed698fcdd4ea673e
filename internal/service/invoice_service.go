package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"
	"go-sukem-pos/internal/ws"
	"go-sukem-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidCoupon     = errors.New("coupon is invalid, used or expired")
)

// CheckoutLine is one cart line submitted at checkout
type CheckoutLine struct {
	ProductID   uuid.UUID `json:"productId" validate:"uuid_required"`
	ProductName string    `json:"productName"`
	Price       int64     `json:"price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
}

// CheckoutRequest is the payload for invoice creation
type CheckoutRequest struct {
	Products       []CheckoutLine `json:"products" validate:"required,min=1,dive"`
	UserID         uuid.UUID      `json:"userId" validate:"uuid_required"`
	PaymentMethod  string         `json:"paymentMethod" validate:"required,oneof=CASH TRANSFER"`
	PaymentStatus  string         `json:"paymentStatus"`
	Note           string         `json:"note"`
	TotalAmount    int64          `json:"totalAmount" validate:"gte=0"`
	OriginalAmount int64          `json:"originalAmount" validate:"gte=0"`
	CouponCode     string         `json:"couponCode"`
}

type InvoiceService interface {
	CreateInvoice(req *CheckoutRequest, actorID uuid.UUID, actorName string) (*model.Invoice, error)
	GetAllInvoices() ([]model.Invoice, error)
	GetInvoiceByID(id uuid.UUID) (*model.Invoice, error)
	DeleteAllInvoices() (int64, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	couponSvc   CouponService
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInvoiceService(iRepo repository.InvoiceRepository, pRepo repository.ProductRepository, couponSvc CouponService, db *gorm.DB, hub *ws.Hub) InvoiceService {
	return &invoiceService{
		invoiceRepo: iRepo,
		productRepo: pRepo,
		couponSvc:   couponSvc,
		db:          db,
		wsHub:       hub,
	}
}

// CreateInvoice runs the whole checkout as one database transaction: invoice
// insert, per-line stock check-and-decrement, and optional coupon
// consumption. Any failure rolls everything back. Reward coupon minting
// happens after commit and never fails the sale.
func (s *invoiceService) CreateInvoice(req *CheckoutRequest, actorID uuid.UUID, actorName string) (*model.Invoice, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		UserID:         req.UserID,
		TotalAmount:    req.TotalAmount,
		OriginalAmount: req.OriginalAmount,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  req.PaymentStatus,
		Note:           req.Note,
		CouponCode:     strings.ToUpper(req.CouponCode),
		Date:           time.Now(),
	}
	invoice.CreatedBy = actorID.String()
	invoice.UpdatedBy = actorID.String()

	stockAfter := make(map[uuid.UUID]int, len(req.Products))

	err := s.db.Transaction(func(tx *gorm.DB) error {
		store := &gormCheckoutStore{tx: tx, invoiceRepo: s.invoiceRepo, productRepo: s.productRepo}
		return runCheckout(store, invoice, req.Products, actorID, stockAfter)
	})

	if err != nil {
		return nil, err
	}

	// Post-commit: a sale with no coupon applied can earn a reward coupon.
	// The sale is already committed, so mint failures only get logged.
	var minted *model.Coupon
	if invoice.CouponCode == "" {
		minted, err = s.couponSvc.MintForInvoice(invoice.ID, invoice.PreDiscountTotal())
		if err != nil {
			log.Printf("failed to mint reward coupon for invoice %s: %v", invoice.InvoiceNumber, err)
		}
	}

	go func() {
		stock := make(map[string]int, len(stockAfter))
		for id, n := range stockAfter {
			stock[id.String()] = n
		}
		s.wsHub.BroadcastEvent(ws.EventSaleCompleted, map[string]interface{}{
			"invoice_number": invoice.InvoiceNumber,
			"total_amount":   invoice.TotalAmount,
			"stock":          stock,
			"message":        fmt.Sprintf("%s completed sale %s", actorName, invoice.InvoiceNumber),
		})
		if minted != nil {
			s.wsHub.BroadcastEvent(ws.EventCouponMinted, map[string]interface{}{
				"code":             minted.Code,
				"discount_percent": minted.DiscountPercent,
				"invoice_number":   invoice.InvoiceNumber,
			})
		}
	}()

	return invoice, nil
}

// checkoutStore is the transactional surface checkout runs against. The
// gorm implementation locks rows FOR UPDATE inside the surrounding
// transaction.
type checkoutStore interface {
	CountInvoicesForDay(day time.Time) (int64, error)
	CreateInvoice(invoice *model.Invoice) error
	LockProduct(id uuid.UUID) (*model.Product, error)
	SetProductStorage(id uuid.UUID, newStorage int, updatedBy string) error
	LockCoupon(code string) (*model.Coupon, error)
	SaveCoupon(coupon *model.Coupon) error
}

type gormCheckoutStore struct {
	tx          *gorm.DB
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
}

func (g *gormCheckoutStore) CountInvoicesForDay(day time.Time) (int64, error) {
	return g.invoiceRepo.CountForDay(g.tx, day)
}

func (g *gormCheckoutStore) CreateInvoice(invoice *model.Invoice) error {
	return g.invoiceRepo.Create(g.tx, invoice)
}

func (g *gormCheckoutStore) LockProduct(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := g.tx.Set("gorm:query_option", "FOR UPDATE").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *gormCheckoutStore) SetProductStorage(id uuid.UUID, newStorage int, updatedBy string) error {
	return g.productRepo.UpdateStorage(g.tx, id, newStorage, updatedBy)
}

func (g *gormCheckoutStore) LockCoupon(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := g.tx.Set("gorm:query_option", "FOR UPDATE").First(&coupon, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (g *gormCheckoutStore) SaveCoupon(coupon *model.Coupon) error {
	return g.tx.Save(coupon).Error
}

// runCheckout executes the checkout steps against a transactional store:
// daily sequence number, invoice insert, per-line stock check-and-decrement,
// optional coupon consumption. Any error aborts the surrounding transaction,
// so a failed line or a bad coupon leaves stock and coupons untouched.
func runCheckout(store checkoutStore, invoice *model.Invoice, lines []CheckoutLine, actorID uuid.UUID, stockAfter map[uuid.UUID]int) error {
	// 1. Daily sequence number DDMM-NN, counted inside the transaction
	count, err := store.CountInvoicesForDay(invoice.Date)
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = model.FormatInvoiceNumber(invoice.Date, int(count)+1)

	// 2. Persist the invoice with its line snapshots
	for _, line := range lines {
		invoice.Items = append(invoice.Items, model.InvoiceItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Price:       line.Price,
			Quantity:    line.Quantity,
		})
	}
	if err := store.CreateInvoice(invoice); err != nil {
		return err
	}

	// 3. Check and decrement stock per line, locked against concurrent
	// checkouts on the same product
	for _, line := range lines {
		product, err := store.LockProduct(line.ProductID)
		if err != nil {
			return fmt.Errorf("%w: product %q does not exist", ErrProductNotFound, line.ProductName)
		}

		if line.Quantity > product.Storage {
			return fmt.Errorf("%w: product %q has only %d left", ErrInsufficientStock, product.Name, product.Storage)
		}

		newStorage := product.Storage - line.Quantity
		if err := store.SetProductStorage(product.ID, newStorage, actorID.String()); err != nil {
			return err
		}
		stockAfter[product.ID] = newStorage
	}

	// 4. Consume the coupon in the same transaction; a bad coupon aborts
	// the whole sale
	if invoice.CouponCode != "" {
		coupon, err := store.LockCoupon(invoice.CouponCode)
		if err != nil {
			return ErrInvalidCoupon
		}
		if !coupon.IsValid() {
			return ErrInvalidCoupon
		}

		now := time.Now()
		coupon.IsUsed = true
		coupon.UsedInInvoiceID = &invoice.ID
		coupon.UsedDate = &now

		if err := store.SaveCoupon(coupon); err != nil {
			return err
		}
	}

	return nil
}

func (s *invoiceService) GetAllInvoices() ([]model.Invoice, error) {
	return s.invoiceRepo.FindAll()
}

func (s *invoiceService) GetInvoiceByID(id uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *invoiceService) DeleteAllInvoices() (int64, error) {
	return s.invoiceRepo.DeleteAll()
}
