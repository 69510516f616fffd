package filter

import (
	"testing"

	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/pkg/models"
)

// TestPlayingCardNodeAgreesWithDirectStreamWalk checks playingCardNode's
// per-lane fallback against an independent walk of StandardPackStream
// built straight from a SingleContext, using the same matchesPlayingCard
// predicate the node itself calls.
func TestPlayingCardNodeAgreesWithDirectStreamWalk(t *testing.T) {
	c := models.Clause{
		Category: models.CategoryPlayingCard, Suit: models.SuitHearts,
		Antes: []int{1, 2}, AntesMask: onesMask(1, 2),
	}
	node := Build(c)
	vc := testVC()

	got := node.Eval(vc)

	for lane := 0; lane < 8; lane++ {
		single := vc.Lane(lane)
		want := false
		for _, ante := range c.Antes {
			stream := single.StandardPackStream(ante)
			for pack := 0; pack < items.PacksPerAnte; pack++ {
				cards, start, ok := stream.NextContents()
				if !ok {
					break
				}
				for i, card := range cards {
					if !slotSelected(c.PackSlotMask, start+i) {
						continue
					}
					if matchesPlayingCard(c, card) {
						want = true
					}
				}
			}
			if want {
				break
			}
		}
		if got.Lane(lane) != want {
			t.Fatalf("lane %d = %v, want %v", lane, got.Lane(lane), want)
		}
	}
}

// TestMatchesPlayingCardRequiresEveryConstrainedField checks that
// matchesPlayingCard only matches when all of the clause's non-zero
// fields (suit, rank, seal, enhancement, edition) agree with the card,
// and an unconstrained field never excludes a match.
func TestMatchesPlayingCardRequiresEveryConstrainedField(t *testing.T) {
	card := items.PlayingCard{
		Suit: models.SuitSpades, Rank: models.RankAce,
		Seal: models.SealGold, Enhancement: models.EnhancementBonus,
	}

	unconstrained := models.Clause{Category: models.CategoryPlayingCard}
	if !matchesPlayingCard(unconstrained, card) {
		t.Fatal("a clause with no suit/rank/seal/enhancement set should match any card")
	}

	wrongSuit := models.Clause{Category: models.CategoryPlayingCard, Suit: models.SuitClubs}
	if matchesPlayingCard(wrongSuit, card) {
		t.Fatal("a clause constrained to Clubs matched a Spades card")
	}

	rightSuitWrongRank := models.Clause{Category: models.CategoryPlayingCard, Suit: models.SuitSpades, Rank: models.RankKing}
	if matchesPlayingCard(rightSuitWrongRank, card) {
		t.Fatal("a clause constrained to King matched an Ace card")
	}

	fullyMatching := models.Clause{
		Category: models.CategoryPlayingCard, Suit: models.SuitSpades, Rank: models.RankAce,
		Seal: models.SealGold, Enhancement: models.EnhancementBonus,
	}
	if !matchesPlayingCard(fullyMatching, card) {
		t.Fatal("a clause matching every field on the card should match")
	}
}
