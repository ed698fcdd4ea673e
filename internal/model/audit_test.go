package model

import "testing"

func snapshotWithStorage(n int) ProductSnapshot {
	return ProductSnapshot{Storage: &n}
}

func TestAuditLogProductName(t *testing.T) {
	live := AuditLog{Product: &Product{Name: "Current Name"}, NewData: ProductSnapshot{Name: "Old Snapshot"}}
	if got := live.ProductName(); got != "Current Name" {
		t.Errorf("ProductName() = %q, want current product name", got)
	}

	gone := AuditLog{NewData: ProductSnapshot{Name: "Last Known"}}
	if got := gone.ProductName(); got != "Last Known" {
		t.Errorf("ProductName() = %q, want new_data fallback", got)
	}

	deleted := AuditLog{Action: AuditDelete, OldData: ProductSnapshot{Name: "Removed Item"}}
	if got := deleted.ProductName(); got != "Removed Item" {
		t.Errorf("ProductName() = %q, want old_data fallback", got)
	}
}

func TestAuditLogDescribe(t *testing.T) {
	cases := []struct {
		name string
		log  AuditLog
		want string
	}{
		{"create", AuditLog{Action: AuditCreate}, "Created product"},
		{"update", AuditLog{Action: AuditUpdate}, "Updated product details"},
		{"delete", AuditLog{Action: AuditDelete}, "Deleted product"},
		{
			"stock received",
			AuditLog{Action: AuditUpdateStorage, OldData: snapshotWithStorage(5), NewData: snapshotWithStorage(12)},
			"Received 7 units into stock",
		},
		{
			"stock removed",
			AuditLog{Action: AuditUpdateStorage, OldData: snapshotWithStorage(12), NewData: snapshotWithStorage(5)},
			"Removed 7 units from stock",
		},
		{
			"stock unchanged",
			AuditLog{Action: AuditUpdateStorage, OldData: snapshotWithStorage(5), NewData: snapshotWithStorage(5)},
			"Updated stock level (no change)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.log.Describe(); got != tc.want {
				t.Errorf("Describe() = %q, want %q", got, tc.want)
			}
		})
	}
}
