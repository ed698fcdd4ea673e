package service

import (
	"errors"
	"testing"
	"time"

	"go-sukem-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeCheckoutStore is an in-memory checkoutStore. Locked reads return
// copies; writes go back to the shared maps, like rows in a transaction.
type fakeCheckoutStore struct {
	dayCount int64
	invoices []*model.Invoice
	products map[uuid.UUID]*model.Product
	coupons  map[string]*model.Coupon
}

func newFakeCheckoutStore() *fakeCheckoutStore {
	return &fakeCheckoutStore{
		products: make(map[uuid.UUID]*model.Product),
		coupons:  make(map[string]*model.Coupon),
	}
}

func (s *fakeCheckoutStore) CountInvoicesForDay(day time.Time) (int64, error) {
	return s.dayCount, nil
}

func (s *fakeCheckoutStore) CreateInvoice(invoice *model.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	s.invoices = append(s.invoices, invoice)
	return nil
}

func (s *fakeCheckoutStore) LockProduct(id uuid.UUID) (*model.Product, error) {
	if p, ok := s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCheckoutStore) SetProductStorage(id uuid.UUID, newStorage int, updatedBy string) error {
	p, ok := s.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Storage = newStorage
	p.UpdatedBy = updatedBy
	return nil
}

func (s *fakeCheckoutStore) LockCoupon(code string) (*model.Coupon, error) {
	if c, ok := s.coupons[code]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCheckoutStore) SaveCoupon(coupon *model.Coupon) error {
	s.coupons[coupon.Code] = coupon
	return nil
}

func (s *fakeCheckoutStore) addProduct(name string, storage int) *model.Product {
	p := &model.Product{Name: name, Price: 10000, InitialPrice: 8000, Storage: storage, Image: name + ".png"}
	p.ID = uuid.New()
	s.products[p.ID] = p
	return p
}

func (s *fakeCheckoutStore) addCoupon(code string, used bool, expiry time.Time) *model.Coupon {
	c := &model.Coupon{Code: code, DiscountPercent: 10, IsUsed: used, ExpiryDate: expiry}
	c.ID = uuid.New()
	s.coupons[code] = c
	return c
}

func checkoutInvoice(day time.Time, couponCode string) *model.Invoice {
	return &model.Invoice{
		UserID:        uuid.New(),
		TotalAmount:   100000,
		PaymentMethod: model.PaymentCash,
		CouponCode:    couponCode,
		Date:          day,
	}
}

func TestCheckoutAssignsDailySequence(t *testing.T) {
	store := newFakeCheckoutStore()
	store.dayCount = 4
	product := store.addProduct("Rice 5kg", 10)
	invoice := checkoutInvoice(time.Date(2025, 4, 29, 14, 0, 0, 0, time.UTC), "")
	lines := []CheckoutLine{{ProductID: product.ID, ProductName: product.Name, Price: 10000, Quantity: 1}}

	err := runCheckout(store, invoice, lines, uuid.New(), map[uuid.UUID]int{})
	if err != nil {
		t.Fatalf("runCheckout failed: %v", err)
	}

	if invoice.InvoiceNumber != "2904-05" {
		t.Errorf("InvoiceNumber = %q, want 2904-05", invoice.InvoiceNumber)
	}
	if len(invoice.Items) != 1 {
		t.Errorf("items = %d, want 1", len(invoice.Items))
	}
	if len(store.invoices) != 1 {
		t.Errorf("persisted invoices = %d, want 1", len(store.invoices))
	}
}

func TestCheckoutDecrementsStockPerLine(t *testing.T) {
	store := newFakeCheckoutStore()
	rice := store.addProduct("Rice 5kg", 10)
	oil := store.addProduct("Cooking Oil", 5)
	invoice := checkoutInvoice(time.Now(), "")
	lines := []CheckoutLine{
		{ProductID: rice.ID, ProductName: rice.Name, Price: 10000, Quantity: 3},
		{ProductID: oil.ID, ProductName: oil.Name, Price: 20000, Quantity: 5},
	}

	stockAfter := map[uuid.UUID]int{}
	if err := runCheckout(store, invoice, lines, uuid.New(), stockAfter); err != nil {
		t.Fatalf("runCheckout failed: %v", err)
	}

	if store.products[rice.ID].Storage != 7 {
		t.Errorf("rice storage = %d, want 7", store.products[rice.ID].Storage)
	}
	if store.products[oil.ID].Storage != 0 {
		t.Errorf("oil storage = %d, want 0", store.products[oil.ID].Storage)
	}
	if stockAfter[rice.ID] != 7 || stockAfter[oil.ID] != 0 {
		t.Errorf("stockAfter = %v, want rice 7 / oil 0", stockAfter)
	}
}

func TestCheckoutRepeatedLinesAccumulate(t *testing.T) {
	store := newFakeCheckoutStore()
	rice := store.addProduct("Rice 5kg", 10)
	invoice := checkoutInvoice(time.Now(), "")
	lines := []CheckoutLine{
		{ProductID: rice.ID, ProductName: rice.Name, Price: 10000, Quantity: 4},
		{ProductID: rice.ID, ProductName: rice.Name, Price: 10000, Quantity: 3},
	}

	if err := runCheckout(store, invoice, lines, uuid.New(), map[uuid.UUID]int{}); err != nil {
		t.Fatalf("runCheckout failed: %v", err)
	}

	if store.products[rice.ID].Storage != 3 {
		t.Errorf("storage = %d, want 3 (both lines must decrement)", store.products[rice.ID].Storage)
	}
}

func TestCheckoutRejectsOversoldLine(t *testing.T) {
	store := newFakeCheckoutStore()
	rice := store.addProduct("Rice 5kg", 10)
	oil := store.addProduct("Cooking Oil", 2)
	invoice := checkoutInvoice(time.Now(), "")
	lines := []CheckoutLine{
		{ProductID: rice.ID, ProductName: rice.Name, Price: 10000, Quantity: 3},
		{ProductID: oil.ID, ProductName: oil.Name, Price: 20000, Quantity: 5},
	}

	err := runCheckout(store, invoice, lines, uuid.New(), map[uuid.UUID]int{})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock so the transaction rolls back", err)
	}
}

func TestCheckoutRejectsMissingProduct(t *testing.T) {
	store := newFakeCheckoutStore()
	invoice := checkoutInvoice(time.Now(), "")
	lines := []CheckoutLine{{ProductID: uuid.New(), ProductName: "Ghost", Price: 10000, Quantity: 1}}

	err := runCheckout(store, invoice, lines, uuid.New(), map[uuid.UUID]int{})
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound", err)
	}
}

func TestCheckoutConsumesCoupon(t *testing.T) {
	store := newFakeCheckoutStore()
	product := store.addProduct("Rice 5kg", 10)
	store.addCoupon("SAVE10AA", false, time.Now().Add(24*time.Hour))
	invoice := checkoutInvoice(time.Now(), "SAVE10AA")
	lines := []CheckoutLine{{ProductID: product.ID, ProductName: product.Name, Price: 10000, Quantity: 1}}

	if err := runCheckout(store, invoice, lines, uuid.New(), map[uuid.UUID]int{}); err != nil {
		t.Fatalf("runCheckout failed: %v", err)
	}

	coupon := store.coupons["SAVE10AA"]
	if !coupon.IsUsed {
		t.Error("coupon should be marked used")
	}
	if coupon.UsedInInvoiceID == nil || *coupon.UsedInInvoiceID != invoice.ID {
		t.Error("coupon should link to the consuming invoice")
	}
	if coupon.UsedDate == nil {
		t.Error("coupon should record when it was used")
	}

	// Second sale with the same code must abort at checkout
	second := checkoutInvoice(time.Now(), "SAVE10AA")
	err := runCheckout(store, second, lines, uuid.New(), map[uuid.UUID]int{})
	if !errors.Is(err, ErrInvalidCoupon) {
		t.Errorf("second use err = %v, want ErrInvalidCoupon", err)
	}
}

func TestCheckoutRejectsBadCoupons(t *testing.T) {
	store := newFakeCheckoutStore()
	product := store.addProduct("Rice 5kg", 10)
	store.addCoupon("OLDCODE2", false, time.Now().Add(-time.Hour))
	lines := []CheckoutLine{{ProductID: product.ID, ProductName: product.Name, Price: 10000, Quantity: 1}}

	expired := checkoutInvoice(time.Now(), "OLDCODE2")
	if err := runCheckout(store, expired, lines, uuid.New(), map[uuid.UUID]int{}); !errors.Is(err, ErrInvalidCoupon) {
		t.Errorf("expired coupon err = %v, want ErrInvalidCoupon", err)
	}

	unknown := checkoutInvoice(time.Now(), "NOSUCH00")
	if err := runCheckout(store, unknown, lines, uuid.New(), map[uuid.UUID]int{}); !errors.Is(err, ErrInvalidCoupon) {
		t.Errorf("unknown coupon err = %v, want ErrInvalidCoupon", err)
	}
}
