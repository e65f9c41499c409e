package terminal

import "testing"

func TestDirtyBoundingRect(t *testing.T) {
	d := newDirtyTracker()
	if d.hasChanges() {
		t.Fatal("fresh tracker reports changes")
	}

	d.markCell(5, 10)
	d.markCell(2, 30)
	d.markCell(8, 4)

	if d.minRow != 2 || d.maxRow != 8 || d.minCol != 4 || d.maxCol != 30 {
		t.Errorf("rect = (%d,%d)-(%d,%d), want (2,4)-(8,30)",
			d.minRow, d.minCol, d.maxRow, d.maxCol)
	}
}

func TestDirtyTileDedup(t *testing.T) {
	d := newDirtyTracker()

	// All within one 8x8 tile
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			d.markCell(r, c)
		}
	}
	if d.l1Count != 1 {
		t.Errorf("l1Count = %d, want 1", d.l1Count)
	}

	d.markCell(8, 0)
	if d.l1Count != 2 {
		t.Errorf("l1Count = %d after second tile, want 2", d.l1Count)
	}
}

func TestDirtyReset(t *testing.T) {
	d := newDirtyTracker()
	d.markCell(3, 3)
	d.markCell(40, 40)
	d.reset()

	if d.hasChanges() {
		t.Error("reset tracker reports changes")
	}
	if d.l1Count != 0 || d.l1Head != nilTile || d.l2Head != nilTile {
		t.Error("reset did not return tiles")
	}
	for i, w := range d.l1Bitmap {
		if w != 0 {
			t.Fatalf("l1Bitmap word %d nonzero after reset", i)
		}
	}

	// Tiles are reusable after reset
	d.markCell(3, 3)
	if d.l1Count != 1 || !d.sparseComplete {
		t.Error("tracker unusable after reset")
	}
}

func TestDirtyPoolExhaustion(t *testing.T) {
	d := newDirtyTracker()

	// Touch more distinct tiles than the pool holds
	for r := 0; r < 64; r++ {
		for c := 0; c < 64; c++ {
			d.markCell(r*tileL1Size, c*tileL1Size)
		}
	}
	if d.sparseComplete {
		t.Error("pool exhaustion left sparseComplete set")
	}
	if d.stats.poolExhausts == 0 {
		t.Error("exhaustion not counted")
	}
	// Bounding rect still covers everything
	if d.minRow != 0 || d.maxRow != 63*tileL1Size || d.maxCol != 63*tileL1Size {
		t.Error("rect incomplete after exhaustion")
	}

	if d.useSparse(10) {
		t.Error("sparse scan offered with incomplete tile list")
	}

	d.reset()
	if !d.sparseComplete {
		t.Error("reset did not clear exhaustion state")
	}
}

func TestDirtyExhaustionRecovery(t *testing.T) {
	d := newDirtyTracker()
	for r := 0; r < 64; r++ {
		for c := 0; c < 64; c++ {
			d.markCell(r*tileL1Size, c*tileL1Size)
		}
	}
	if d.sparseComplete {
		t.Fatal("pool not exhausted")
	}
	d.reset()

	// No orphaned bits may survive reset: a stale bit would dedupe the
	// next mark in its tile without ever re-entering the sparse list
	for i, w := range d.l1Bitmap {
		if w != 0 {
			t.Fatalf("l1Bitmap word %d nonzero after exhaustion reset", i)
		}
	}
	for i, w := range d.l2Bitmap {
		if w != 0 {
			t.Fatalf("l2Bitmap word %d nonzero after exhaustion reset", i)
		}
	}

	// A tile whose allocation failed last frame is trackable again
	d.markCell(63*tileL1Size, 63*tileL1Size)
	if !d.sparseComplete {
		t.Error("tracker still incomplete after reset")
	}
	if d.l1Count != 1 {
		t.Fatalf("l1Count = %d after remark, want 1", d.l1Count)
	}
	found := false
	for idx := d.l1Head; idx != nilTile; idx = d.pool[idx].next {
		if d.pool[idx].row == 63 && d.pool[idx].col == 63 {
			found = true
		}
	}
	if !found {
		t.Error("remarked tile missing from sparse list")
	}
	if !d.l2Dirty(63*tileL1Size, 63*tileL1Size) {
		t.Error("remarked cell missing from L2 bitmap")
	}
	if d.l2Dirty(0, 0) {
		t.Error("stale L2 bit survived for an untouched block")
	}
}

func TestDirtyOutOfBitmapRange(t *testing.T) {
	d := newDirtyTracker()
	d.markCell(maxL1TilesY*tileL1Size+5, 0)
	if d.sparseComplete {
		t.Error("off-bitmap cell left sparseComplete set")
	}
	if d.maxRow != maxL1TilesY*tileL1Size+5 {
		t.Error("off-bitmap cell missing from rect")
	}
}

func TestDirtyStrategyAdapts(t *testing.T) {
	d := newDirtyTracker()

	// A lone dirty tile inside a huge rect favors sparse
	d.markCell(0, 0)
	if !d.useSparse(10000) {
		t.Error("sparse not chosen for tiny change in large rect")
	}
	d.reset()

	// Dense change: tile area is not smaller than the rect
	d.markRegion(0, 0, 7, 7)
	if d.useSparse(64) {
		t.Error("sparse chosen for fully dense rect")
	}
}
