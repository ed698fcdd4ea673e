package model

import "testing"

func TestProductSnapshotCopiesStorage(t *testing.T) {
	p := Product{Name: "Rice 5kg", Price: 120000, InitialPrice: 100000, Storage: 70, Image: "rice.png"}

	snap := p.Snapshot()
	p.Storage = 10

	if snap.Storage == nil {
		t.Fatal("snapshot storage is nil")
	}
	if *snap.Storage != 70 {
		t.Errorf("snapshot storage = %d, want 70 (must not track later mutations)", *snap.Storage)
	}
}
