package model

import (
	"testing"
	"time"
)

func TestPromotionActiveAt(t *testing.T) {
	now := time.Now()
	p := Promotion{
		IsActive:  true,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}

	if !p.ActiveAt(now) {
		t.Error("promotion covering now should be active")
	}
	if p.ActiveAt(now.Add(-2 * time.Hour)) {
		t.Error("promotion should not be active before its window")
	}
	if p.ActiveAt(now.Add(2 * time.Hour)) {
		t.Error("promotion should not be active after its window")
	}

	// Inclusive bounds
	if !p.ActiveAt(p.StartDate) || !p.ActiveAt(p.EndDate) {
		t.Error("window bounds should be inclusive")
	}

	p.IsActive = false
	if p.ActiveAt(now) {
		t.Error("inactive promotion should never apply")
	}
}

func TestPromotionPromoPrice(t *testing.T) {
	cases := []struct {
		percent int
		price   int64
		want    int64
	}{
		{10, 100000, 90000},
		{50, 99999, 50000}, // 49999.5 rounds up
		{100, 100000, 0},
		{1, 100, 99},
	}

	for _, tc := range cases {
		p := Promotion{DiscountPercent: tc.percent}
		if got := p.PromoPrice(tc.price); got != tc.want {
			t.Errorf("PromoPrice(%d) at %d%% = %d, want %d", tc.price, tc.percent, got, tc.want)
		}
	}
}

func TestPromotionOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := Promotion{
		StartDate: base,
		EndDate:   base.AddDate(0, 0, 10),
	}

	// Intersecting window
	if !p.Overlaps(base.AddDate(0, 0, 5), base.AddDate(0, 0, 15)) {
		t.Error("intersecting windows should overlap")
	}
	// Fully containing window
	if !p.Overlaps(base.AddDate(0, 0, -5), base.AddDate(0, 0, 15)) {
		t.Error("containing window should overlap")
	}
	// Touching at the boundary counts as overlap (inclusive)
	if !p.Overlaps(base.AddDate(0, 0, 10), base.AddDate(0, 0, 20)) {
		t.Error("boundary touch should overlap")
	}
	// Disjoint after
	if p.Overlaps(base.AddDate(0, 0, 11), base.AddDate(0, 0, 20)) {
		t.Error("disjoint later window should not overlap")
	}
	// Disjoint before
	if p.Overlaps(base.AddDate(0, 0, -10), base.AddDate(0, 0, -1)) {
		t.Error("disjoint earlier window should not overlap")
	}
}
