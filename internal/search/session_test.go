package search

import (
	"context"
	"testing"

	"github.com/rawblock/seedscan/internal/clause"
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/pkg/models"
)

// voucherQuery builds a single-clause Must query: a voucher named value
// at the given ante, no Should clauses.
func voucherQuery(t *testing.T, value string, ante int) models.Query {
	t.Helper()
	antes := []int{ante}
	raw := models.RawQuery{
		Must: []models.RawClause{{Type: "voucher", Value: value, Antes: &antes}},
	}
	q, errs := clause.NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected normalization errors: %v", errs)
	}
	return q
}

func TestVoucherMustMatchesOnlyLanesWithThatVoucherAtAnte(t *testing.T) {
	q := voucherQuery(t, "Telescope", 1)
	session := NewSession(q, 0, false)

	seeds := EnumerateSeeds(0, 8)
	var got []models.Tally
	session.Run(context.Background(), seeds, 1, func(tl models.Tally) {
		got = append(got, tl)
	})

	matched := make(map[string]bool)
	for _, seed := range seeds {
		sc := &items.SingleContext{Seed: seed}
		rs := items.NewRunState()
		if sc.AnteFirstVoucher(1, rs) == "Telescope" {
			matched[seed] = true
		}
	}

	if len(got) != len(matched) {
		t.Fatalf("got %d results, want %d (seeds with Telescope at ante 1)", len(got), len(matched))
	}
	for _, tally := range got {
		if !matched[tally.Seed] {
			t.Fatalf("seed %s returned but its ante-1 voucher is not Telescope", tally.Seed)
		}
		if tally.Score != 0 {
			t.Fatalf("seed %s score = %d, want 0 (no Should clauses)", tally.Seed, tally.Score)
		}
		if len(tally.PerClauseCounts) != 0 {
			t.Fatalf("seed %s perClauseCounts = %v, want empty", tally.Seed, tally.PerClauseCounts)
		}
	}
}

func TestAutoCutoffRaisesToTheBestScoreSeen(t *testing.T) {
	antes := []int{1, 2, 3, 4, 5, 6, 7, 8}
	raw := models.RawQuery{
		Should: []models.RawClause{{Type: "boss", Value: "", Score: 1, Antes: &antes}},
	}
	q, errs := clause.NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected normalization errors: %v", errs)
	}

	session := NewSession(q, 1, true)
	seeds := EnumerateSeeds(0, 1000)

	best := 0
	session.Run(context.Background(), seeds, 4, func(tl models.Tally) {
		if tl.Score > best {
			best = tl.Score
		}
	})

	progress := session.Progress()
	if progress.LearnedCutoff != int64(best) {
		t.Fatalf("learned cutoff = %d, want %d (best score seen)", progress.LearnedCutoff, best)
	}
	if progress.SeedsScanned != int64(len(seeds)) {
		t.Fatalf("seeds scanned = %d, want %d", progress.SeedsScanned, len(seeds))
	}
}

func TestAutoCutoffNeverDecreases(t *testing.T) {
	antes := []int{1}
	raw := models.RawQuery{
		Should: []models.RawClause{{Type: "boss", Value: "", Score: 1, Antes: &antes}},
	}
	q, _ := clause.NormalizeQuery(raw)

	session := NewSession(q, 5, true)
	var lastSeen int64
	seeds := EnumerateSeeds(0, 200)
	session.Run(context.Background(), seeds, 2, func(tl models.Tally) {
		cur := session.Progress().LearnedCutoff
		if cur < lastSeen {
			t.Fatalf("learned cutoff decreased: %d then %d", lastSeen, cur)
		}
		lastSeen = cur
	})
}

func TestMustNotClauseExcludesMatchingSeeds(t *testing.T) {
	antes := []int{1}
	raw := models.RawQuery{
		MustNot: []models.RawClause{{Type: "voucher", Value: "Telescope", Antes: &antes}},
	}
	q, errs := clause.NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected normalization errors: %v", errs)
	}
	session := NewSession(q, 0, false)
	seeds := EnumerateSeeds(0, 8)

	returned := make(map[string]bool)
	session.Run(context.Background(), seeds, 1, func(tl models.Tally) {
		returned[tl.Seed] = true
	})

	for _, seed := range seeds {
		sc := &items.SingleContext{Seed: seed}
		isTelescope := sc.AnteFirstVoucher(1, items.NewRunState()) == "Telescope"
		if isTelescope && returned[seed] {
			t.Fatalf("seed %s has Telescope at ante 1 and should have been excluded by MustNot", seed)
		}
		if !isTelescope && !returned[seed] {
			t.Fatalf("seed %s lacks Telescope at ante 1 and should have passed the empty Must list", seed)
		}
	}
}

func TestScoringIsAdditiveAcrossShouldClauses(t *testing.T) {
	smallAntes := []int{1}
	bigAntes := []int{1}
	raw := models.RawQuery{
		Should: []models.RawClause{
			{Type: "tag", Value: "", TagType: "small", Score: 3, Antes: &smallAntes},
			{Type: "tag", Value: "", TagType: "big", Score: 5, Antes: &bigAntes},
		},
	}
	q, errs := clause.NormalizeQuery(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected normalization errors: %v", errs)
	}
	session := NewSession(q, 0, false)
	seeds := EnumerateSeeds(0, 8)

	session.Run(context.Background(), seeds, 1, func(tl models.Tally) {
		want := 0
		for i, c := range q.Should {
			want += c.Score * tl.PerClauseCounts[i]
		}
		if tl.Score != want {
			t.Fatalf("seed %s: score %d != sum of per-clause contributions %d (counts=%v)", tl.Seed, tl.Score, want, tl.PerClauseCounts)
		}
	})
}

func TestCancelStopsScanEarly(t *testing.T) {
	q := voucherQuery(t, "Telescope", 1)
	session := NewSession(q, 0, false)
	session.Cancel()

	seeds := EnumerateSeeds(0, 800)
	session.Run(context.Background(), seeds, 4, func(models.Tally) {
		t.Fatal("no results should be produced after Cancel")
	})
}
