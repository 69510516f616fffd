package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// playingCardNode falls back to per-lane evaluation because standard-pack
// size varies per lane and the resulting card-slot indexing is branchy.
type playingCardNode struct{ clause models.Clause }

func (n *playingCardNode) Eval(vc *items.VectorContext) vector.Mask {
	var mask vector.Mask
	for lane := 0; lane < vector.LaneCount; lane++ {
		single := vc.Lane(lane)
		if n.matchLane(single) {
			mask = mask.SetLane(lane, true)
		}
	}
	return mask
}

func (n *playingCardNode) matchLane(single *items.SingleContext) bool {
	c := n.clause
	for _, ante := range c.Antes {
		stream := single.StandardPackStream(ante)
		for pack := 0; pack < items.PacksPerAnte; pack++ {
			cards, start, ok := stream.NextContents()
			if !ok {
				break
			}
			if c.RequireMega && len(cards) != int(models.PackSizeMega) {
				continue
			}
			for i, card := range cards {
				if !slotSelected(c.PackSlotMask, start+i) {
					continue
				}
				if matchesPlayingCard(c, card) {
					return true
				}
			}
		}
	}
	return false
}

func matchesPlayingCard(c models.Clause, card items.PlayingCard) bool {
	if c.Suit != models.SuitNone && card.Suit != c.Suit {
		return false
	}
	if c.Rank != models.RankNone && card.Rank != c.Rank {
		return false
	}
	if c.Seal != models.SealNone && card.Seal != c.Seal {
		return false
	}
	if c.Enhancement != models.EnhancementNone && card.Enhancement != c.Enhancement {
		return false
	}
	if !editionSatisfied(c, card.Edition) {
		return false
	}
	return true
}
