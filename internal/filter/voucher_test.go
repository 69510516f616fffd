package filter

import (
	"testing"

	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/pkg/models"
)

// TestVoucherNodeAgreesWithDirectAnteWalk checks that voucherNode's Eval
// matches an independent per-lane walk of AnteFirstVoucher/Activate, built
// without going through the filter package at all.
func TestVoucherNodeAgreesWithDirectAnteWalk(t *testing.T) {
	c := models.Clause{
		Category: models.CategoryVoucher, Value: "Telescope",
		Antes: []int{1, 2, 3}, AntesMask: onesMask(1, 2, 3),
	}
	node := Build(c)
	vc := testVC()

	got := node.Eval(vc)

	rs := items.NewVectorRunState()
	var want [8]bool
	for ante := 1; ante <= 3; ante++ {
		voucher := vc.AnteFirstVoucher(ante, rs)
		for lane := 0; lane < 8; lane++ {
			if voucher[lane] == "Telescope" {
				want[lane] = true
			}
		}
		rs.Activate(voucher)
	}

	for lane := 0; lane < 8; lane++ {
		if got.Lane(lane) != want[lane] {
			t.Fatalf("lane %d = %v, want %v", lane, got.Lane(lane), want[lane])
		}
	}
}

// TestVoucherNodeWithNoAntesBeforeOneMatchesNothing checks that a clause
// whose ante range never reaches ante 1 (e.g. only ante 0, dropped as an
// empty domain during normalization) produces an all-false mask rather
// than panicking on an empty walk.
func TestVoucherNodeWithNoAntesBeforeOneMatchesNothing(t *testing.T) {
	c := models.Clause{Category: models.CategoryVoucher, Value: "Telescope"}
	node := Build(c)
	mask := node.Eval(testVC())
	if !mask.AllFalse() {
		t.Fatalf("voucher clause with no antes matched = %08b, want all false", mask)
	}
}

// TestVoucherCountMatchesEvalOnSingleAnte checks Count agrees with Eval
// when the clause spans exactly one ante: Count should be 1 for lanes
// where Eval is true, 0 otherwise.
func TestVoucherCountMatchesEvalOnSingleAnte(t *testing.T) {
	c := models.Clause{
		Category: models.CategoryVoucher, Value: "Telescope",
		Antes: []int{1}, AntesMask: onesMask(1),
	}
	node := Build(c)
	vn, ok := node.(Counter)
	if !ok {
		t.Fatal("voucherNode does not implement Counter")
	}

	vc := testVC()
	mask := node.Eval(vc)
	counts := vn.Count(vc)

	for lane := 0; lane < 8; lane++ {
		want := 0
		if mask.Lane(lane) {
			want = 1
		}
		if counts[lane] != want {
			t.Fatalf("lane %d count = %d, want %d (mask bit %v)", lane, counts[lane], want, mask.Lane(lane))
		}
	}
}
