package filter

import (
	"testing"

	"github.com/rawblock/seedscan/pkg/models"
)

// TestSoulJokerVectorPreFilterAgreesWithPerLaneVerify pins the
// souljoker=Perkeo, antes 1-3, packSlots 0-5 scenario: a candidate lane
// must both roll Perkeo as its would-be soul joker in one of those antes
// and have an actual Soul card reachable in an allowed pack slot that
// ante. This exercises both stages of soulJokerNode.Eval — the vectorized
// name/rarity/edition pre-filter and the per-lane soulReachable walk —
// against an independently driven single-lane walk.
func TestSoulJokerVectorPreFilterAgreesWithPerLaneVerify(t *testing.T) {
	c := models.Clause{
		Category:     models.CategorySoulJoker,
		Value:        "Perkeo",
		Antes:        []int{1, 2, 3},
		AntesMask:    onesMask(1, 2, 3),
		PackSlotMask: 0x3F, // slots 0-5
	}
	node := Build(c)
	sj, ok := node.(*soulJokerNode)
	if !ok {
		t.Fatalf("Build(souljoker clause) = %T, want *soulJokerNode", node)
	}

	vc := testVC()
	got := node.Eval(vc)

	for lane := 0; lane < 8; lane++ {
		single := vc.Lane(lane)

		want := false
		for _, ante := range c.Antes {
			stream := single.SoulJokerStream(ante)
			pick := stream.Next()
			if pick.Name != "Perkeo" {
				continue
			}
			if sj.soulReachable(single, ante, c) {
				want = true
				break
			}
		}

		if got.Lane(lane) != want {
			t.Fatalf("lane %d = %v, want %v (independent per-lane walk)", lane, got.Lane(lane), want)
		}
	}
}

// TestSoulJokerCandidateFalseShortCircuitsVerify checks that when no lane's
// vectorized pre-filter names the clause's joker, Eval returns immediately
// without needing to run any per-lane soulReachable walk.
func TestSoulJokerCandidateFalseShortCircuitsVerify(t *testing.T) {
	c := models.Clause{
		Category:  models.CategorySoulJoker,
		Value:     "a name no stream will ever produce",
		Antes:     []int{1},
		AntesMask: onesMask(1),
	}
	node := Build(c)
	mask := node.Eval(testVC())
	if !mask.AllFalse() {
		t.Fatalf("souljoker clause naming an unreachable joker = %08b, want all false", mask)
	}
}
