package service

import (
	"errors"
	"testing"
	"time"

	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeCouponRepo is an in-memory CouponRepository for service tests
type fakeCouponRepo struct {
	coupons    map[string]*model.Coupon
	codesTaken bool // when set, CodeExists always reports a collision
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[string]*model.Coupon)}
}

func (r *fakeCouponRepo) Create(coupon *model.Coupon) error {
	if coupon.ID == uuid.Nil {
		coupon.ID = uuid.New()
	}
	r.coupons[coupon.Code] = coupon
	return nil
}

func (r *fakeCouponRepo) Find(filter repository.CouponFilter) ([]model.Coupon, error) {
	var out []model.Coupon
	for _, c := range r.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCouponRepo) FindByID(id uuid.UUID) (*model.Coupon, error) {
	for _, c := range r.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCouponRepo) FindByCode(code string) (*model.Coupon, error) {
	if c, ok := r.coupons[code]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCouponRepo) CodeExists(code string) (bool, error) {
	if r.codesTaken {
		return true, nil
	}
	_, ok := r.coupons[code]
	return ok, nil
}

func (r *fakeCouponRepo) Delete(id uuid.UUID) error {
	for code, c := range r.coupons {
		if c.ID == id {
			delete(r.coupons, code)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func seedCoupon(repo *fakeCouponRepo, code string, percent int, minOrder int64, used bool, expiry time.Time) *model.Coupon {
	c := &model.Coupon{
		Code:            code,
		DiscountPercent: percent,
		MinOrderValue:   minOrder,
		IsUsed:          used,
		ExpiryDate:      expiry,
	}
	repo.Create(c)
	return c
}

func TestApplyCouponComputesDiscount(t *testing.T) {
	repo := newFakeCouponRepo()
	seedCoupon(repo, "SAVE25AB", 25, 0, false, time.Now().Add(24*time.Hour))
	svc := NewCouponService(repo)

	result, err := svc.ApplyCoupon("save25ab", 2000000)
	if err != nil {
		t.Fatalf("ApplyCoupon failed: %v", err)
	}

	if result.DiscountAmount != 500000 {
		t.Errorf("DiscountAmount = %d, want 500000", result.DiscountAmount)
	}
	if result.FinalAmount != 1500000 {
		t.Errorf("FinalAmount = %d, want 1500000", result.FinalAmount)
	}
}

func TestApplyCouponRejectsUsed(t *testing.T) {
	repo := newFakeCouponRepo()
	seedCoupon(repo, "USEDCODE", 10, 0, true, time.Now().Add(24*time.Hour))
	svc := NewCouponService(repo)

	if _, err := svc.ApplyCoupon("USEDCODE", 1000000); !errors.Is(err, ErrCouponUsed) {
		t.Errorf("err = %v, want ErrCouponUsed", err)
	}
}

func TestApplyCouponRejectsExpired(t *testing.T) {
	repo := newFakeCouponRepo()
	seedCoupon(repo, "OLDCODE1", 10, 0, false, time.Now().Add(-time.Hour))
	svc := NewCouponService(repo)

	if _, err := svc.ApplyCoupon("OLDCODE1", 1000000); !errors.Is(err, ErrCouponExpired) {
		t.Errorf("err = %v, want ErrCouponExpired", err)
	}
}

func TestApplyCouponEnforcesMinimum(t *testing.T) {
	repo := newFakeCouponRepo()
	seedCoupon(repo, "BIGONLY1", 10, 1000000, false, time.Now().Add(24*time.Hour))
	svc := NewCouponService(repo)

	if _, err := svc.ApplyCoupon("BIGONLY1", 500000); !errors.Is(err, ErrOrderBelowMin) {
		t.Errorf("err = %v, want ErrOrderBelowMin", err)
	}
}

func TestApplyCouponUnknownCode(t *testing.T) {
	svc := NewCouponService(newFakeCouponRepo())

	if _, err := svc.ApplyCoupon("NOPE0000", 1000000); !errors.Is(err, ErrCouponNotFound) {
		t.Errorf("err = %v, want ErrCouponNotFound", err)
	}
}

func TestMintForInvoiceTiers(t *testing.T) {
	repo := newFakeCouponRepo()
	svc := NewCouponService(repo)
	invoiceID := uuid.New()

	minted, err := svc.MintForInvoice(invoiceID, 2500000)
	if err != nil {
		t.Fatalf("MintForInvoice failed: %v", err)
	}
	if minted == nil {
		t.Fatal("expected a coupon for 2,500,000")
	}
	if minted.DiscountPercent != 25 {
		t.Errorf("DiscountPercent = %d, want 25", minted.DiscountPercent)
	}
	if len(minted.Code) != model.CouponCodeLength {
		t.Errorf("code length = %d, want %d", len(minted.Code), model.CouponCodeLength)
	}
	if minted.MinOrderValue != 0 {
		t.Errorf("MinOrderValue = %d, want 0", minted.MinOrderValue)
	}
	if minted.CreatedFromInvoiceID != invoiceID {
		t.Error("coupon not linked to originating invoice")
	}
	// 30-day expiry, allow slack for test runtime
	wantExpiry := time.Now().AddDate(0, 0, 30)
	if minted.ExpiryDate.Before(wantExpiry.Add(-time.Minute)) || minted.ExpiryDate.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("ExpiryDate = %v, want ~%v", minted.ExpiryDate, wantExpiry)
	}
}

func TestMintForInvoiceBelowThreshold(t *testing.T) {
	svc := NewCouponService(newFakeCouponRepo())

	minted, err := svc.MintForInvoice(uuid.New(), 400000)
	if err != nil {
		t.Fatalf("MintForInvoice failed: %v", err)
	}
	if minted != nil {
		t.Error("no coupon should be minted below 500,000")
	}
}

func TestMintForInvoiceGivesUpOnCollisions(t *testing.T) {
	repo := newFakeCouponRepo()
	repo.codesTaken = true
	svc := NewCouponService(repo)

	if _, err := svc.MintForInvoice(uuid.New(), 2000000); !errors.Is(err, ErrCodeGeneration) {
		t.Errorf("err = %v, want ErrCodeGeneration", err)
	}
}

func TestDeleteCouponRefusesUsed(t *testing.T) {
	repo := newFakeCouponRepo()
	used := seedCoupon(repo, "SPENT123", 10, 0, true, time.Now().Add(24*time.Hour))
	svc := NewCouponService(repo)

	if err := svc.DeleteCoupon(used.ID); !errors.Is(err, ErrCouponUndeletable) {
		t.Errorf("err = %v, want ErrCouponUndeletable", err)
	}

	fresh := seedCoupon(repo, "FRESH456", 10, 0, false, time.Now().Add(24*time.Hour))
	if err := svc.DeleteCoupon(fresh.ID); err != nil {
		t.Errorf("deleting unused coupon failed: %v", err)
	}
}
