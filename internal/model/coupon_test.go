package model

import (
	"strings"
	"testing"
	"time"
)

func TestCalculateDiscountPercent(t *testing.T) {
	cases := []struct {
		total int64
		want  int
	}{
		{3000000, 30},
		{5000000, 30},
		{2500000, 25},
		{2000000, 25},
		{1500000, 20},
		{1000000, 15},
		{999999, 10},
		{500000, 10},
		{499999, 0},
		{400000, 0},
		{0, 0},
	}

	for _, tc := range cases {
		if got := CalculateDiscountPercent(tc.total); got != tc.want {
			t.Errorf("CalculateDiscountPercent(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}

func TestGenerateCouponCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateCouponCode()
		if len(code) != CouponCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), CouponCodeLength)
		}
		for _, ch := range code {
			if !strings.ContainsRune(couponCodeChars, ch) {
				t.Fatalf("code %q contains invalid character %q", code, ch)
			}
		}
	}
}

func TestCouponIsValid(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	fresh := Coupon{ExpiryDate: future}
	if !fresh.IsValid() {
		t.Error("unused, unexpired coupon should be valid")
	}

	used := Coupon{IsUsed: true, ExpiryDate: future}
	if used.IsValid() {
		t.Error("used coupon should not be valid")
	}

	expired := Coupon{ExpiryDate: past}
	if expired.IsValid() {
		t.Error("expired coupon should not be valid")
	}
}

func TestCouponDiscountAmount(t *testing.T) {
	c := Coupon{DiscountPercent: 25}

	if got := c.DiscountAmount(2500000); got != 625000 {
		t.Errorf("DiscountAmount(2500000) = %d, want 625000", got)
	}

	// Rounds to nearest: 10% of 15 is 1.5, rounds up to 2
	c10 := Coupon{DiscountPercent: 10}
	if got := c10.DiscountAmount(15); got != 2 {
		t.Errorf("DiscountAmount(15) = %d, want 2", got)
	}
}
