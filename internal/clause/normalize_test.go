package clause

import (
	"testing"

	"github.com/rawblock/seedscan/pkg/models"
)

func TestNoAntesDefaultsToAllEightAntes(t *testing.T) {
	raw := models.RawQuery{
		Must: []models.RawClause{{Type: "voucher", Value: "Telescope"}},
	}
	q, errs := NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(q.Must) != 1 {
		t.Fatalf("expected 1 must clause, got %d", len(q.Must))
	}
	got := q.Must[0].Antes
	if len(got) != len(models.DefaultAntes) {
		t.Fatalf("antes = %v, want %v", got, models.DefaultAntes)
	}
	for i, a := range models.DefaultAntes {
		if got[i] != a {
			t.Fatalf("antes = %v, want %v", got, models.DefaultAntes)
		}
	}
}

func TestExplicitEmptyAntesIsAnError(t *testing.T) {
	empty := []int{}
	raw := models.RawQuery{
		Must: []models.RawClause{{Type: "voucher", Value: "Telescope", Antes: &empty}},
	}
	_, errs := NormalizeQuery(raw)
	if len(errs) == 0 {
		t.Fatal("expected an error for an explicit empty antes list, got none")
	}
}

func TestExplicitAntesMatchesDefaultBehaviorWhenEqual(t *testing.T) {
	explicit := append([]int(nil), models.DefaultAntes...)
	rawDefault := models.RawQuery{Must: []models.RawClause{{Type: "boss", Value: "The Wall"}}}
	rawExplicit := models.RawQuery{Must: []models.RawClause{{Type: "boss", Value: "The Wall", Antes: &explicit}}}

	qd, errs1 := NormalizeQuery(rawDefault)
	qe, errs2 := NormalizeQuery(rawExplicit)
	if len(errs1) != 0 || len(errs2) != 0 {
		t.Fatalf("unexpected errors: %v %v", errs1, errs2)
	}
	if qd.Must[0].AntesMask != qe.Must[0].AntesMask {
		t.Fatalf("ante-defaulted clause AntesMask differs from explicit [1..8] AntesMask")
	}
}

func TestGenericTagWithNoTagTypeDefaultsToEither(t *testing.T) {
	raw := models.RawQuery{Must: []models.RawClause{{Type: "tag", Value: "Charm Tag"}}}
	q, errs := NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if q.Must[0].TagScope != models.TagScopeEither {
		t.Fatalf("TagScope = %v, want TagScopeEither", q.Must[0].TagScope)
	}
}

func TestTagWithExplicitSmallTypeIsScopedToSmall(t *testing.T) {
	raw := models.RawQuery{Must: []models.RawClause{{Type: "tag", Value: "Charm Tag", TagType: "small"}}}
	q, errs := NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if q.Must[0].TagScope != models.TagScopeSmall {
		t.Fatalf("TagScope = %v, want TagScopeSmall", q.Must[0].TagScope)
	}
}

func TestFlatShopSlotsWinOverNestedSourcesWhenBothSet(t *testing.T) {
	raw := models.RawClause{
		Type:      "joker",
		Value:     "Joker",
		ShopSlots: []int{2},
		Sources:   &models.RawSources{ShopSlots: []int{5}},
	}
	var e errs
	c, ok := normalizeClause(raw, "must[0]", &e)
	if !ok {
		t.Fatalf("unexpected errors: %v", e.list)
	}
	if c.ShopSlotMask != 1<<2 {
		t.Fatalf("ShopSlotMask = %b, want flat value 1<<2", c.ShopSlotMask)
	}
}

func TestNestedSourcesUsedWhenFlatAbsent(t *testing.T) {
	raw := models.RawClause{
		Type:    "joker",
		Value:   "Joker",
		Sources: &models.RawSources{ShopSlots: []int{5}},
	}
	var e errs
	c, ok := normalizeClause(raw, "must[0]", &e)
	if !ok {
		t.Fatalf("unexpected errors: %v", e.list)
	}
	if c.ShopSlotMask != 1<<5 {
		t.Fatalf("ShopSlotMask = %b, want nested value 1<<5", c.ShopSlotMask)
	}
}

func TestSoulJokerWithShopSlotsIsRejected(t *testing.T) {
	raw := models.RawQuery{
		Must: []models.RawClause{{Type: "souljoker", Value: "Canio", ShopSlots: []int{1}}},
	}
	_, errs := NormalizeQuery(raw)
	if len(errs) == 0 {
		t.Fatal("expected an error for SoulJoker with shopSlots, got none")
	}
}

func TestUnknownClauseTypeIsRejected(t *testing.T) {
	raw := models.RawQuery{Must: []models.RawClause{{Type: "not-a-real-type"}}}
	_, errs := NormalizeQuery(raw)
	if len(errs) == 0 {
		t.Fatal("expected an error for an unrecognized clause type, got none")
	}
}

func TestMaxVoucherAnteTracksDeepestMustVoucher(t *testing.T) {
	raw := models.RawQuery{
		Must: []models.RawClause{
			{Type: "voucher", Value: "Telescope", Antes: intsPtr(1, 2)},
			{Type: "voucher", Value: "Overstock", Antes: intsPtr(5)},
		},
	}
	q, errs := NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if q.MaxVoucherAnte != 5 {
		t.Fatalf("MaxVoucherAnte = %d, want 5", q.MaxVoucherAnte)
	}
}

func TestAnteZeroIsDroppedAsAnEmptyDomain(t *testing.T) {
	raw := models.RawQuery{
		Must: []models.RawClause{{Type: "boss", Value: "The Wall", Antes: intsPtr(0, 1)}},
	}
	q, errs := NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	c := q.Must[0]
	if c.AntesMask[0] {
		t.Fatal("AntesMask[0] should never be set; ante 0 has no stream")
	}
	for _, a := range c.Antes {
		if a == 0 {
			t.Fatalf("Antes = %v should not contain 0", c.Antes)
		}
	}
	if len(c.Antes) != 1 || c.Antes[0] != 1 {
		t.Fatalf("Antes = %v, want [1] (0 dropped, 1 kept)", c.Antes)
	}
}

func intsPtr(vals ...int) *[]int { return &vals }
