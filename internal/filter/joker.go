package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// jokerNode scans shopSlots of the ante's shop stream and packSlots of
// Buffoon-pack contents for a non-soul Joker clause.
type jokerNode struct{ clause models.Clause }

func (n *jokerNode) Eval(vc *items.VectorContext) vector.Mask {
	c := n.clause
	mask := vector.NoBitsSet
	for _, ante := range c.Antes {
		mask = mask.Or(n.scanShop(vc, ante))
		mask = mask.Or(n.scanBuffoonPacks(vc, ante))
	}
	return mask
}

func (n *jokerNode) scanShop(vc *items.VectorContext, ante int) vector.Mask {
	c := n.clause
	stream := vc.ShopItemStream(ante)
	mask := vector.NoBitsSet
	for slot := 0; slot < shopSlotsPerAnteCap; slot++ {
		items := stream.Next()
		if !slotSelected(c.ShopSlotMask, slot) {
			continue
		}
		mask = mask.Or(vector.MatchMask(items, func(it itemsShopItem) bool {
			return matchesJokerItem(c, it)
		}))
	}
	return mask
}

func (n *jokerNode) scanBuffoonPacks(vc *items.VectorContext, ante int) vector.Mask {
	c := n.clause
	if c.PackSlotMask == 0 && !c.RequireMega {
		return vector.NoBitsSet
	}
	stream := vc.BuffoonPackStream(ante)
	mask := vector.NoBitsSet
	for pack := 0; pack < packsPerAnteCap; pack++ {
		jokers, starts, ok := stream.NextContents()
		if ok.AllFalse() {
			break
		}
		for lane := 0; lane < vector.LaneCount; lane++ {
			if !ok.Lane(lane) {
				continue
			}
			for i, jp := range jokers[lane] {
				if !slotSelected(c.PackSlotMask, starts[lane]+i) {
					continue
				}
				if matchesWildcardOrValue(c, jp.Rarity, jp.Name) && editionSatisfied(c, jp.Edition) {
					mask = mask.SetLane(lane, true)
				}
			}
		}
	}
	return mask
}

// Count implements filter.Counter: total matching occurrences across every
// scanned shop slot and Buffoon-pack card.
func (n *jokerNode) Count(vc *items.VectorContext) [vector.LaneCount]int {
	c := n.clause
	var counts [vector.LaneCount]int
	for _, ante := range c.Antes {
		stream := vc.ShopItemStream(ante)
		for slot := 0; slot < shopSlotsPerAnteCap; slot++ {
			batch := stream.Next()
			if !slotSelected(c.ShopSlotMask, slot) {
				continue
			}
			for lane := 0; lane < vector.LaneCount; lane++ {
				if matchesJokerItem(c, batch[lane]) {
					counts[lane]++
				}
			}
		}
		if c.PackSlotMask == 0 && !c.RequireMega {
			continue
		}
		bstream := vc.BuffoonPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			jokers, starts, ok := bstream.NextContents()
			if ok.AllFalse() {
				break
			}
			for lane := 0; lane < vector.LaneCount; lane++ {
				if !ok.Lane(lane) {
					continue
				}
				for i, jp := range jokers[lane] {
					if slotSelected(c.PackSlotMask, starts[lane]+i) &&
						matchesWildcardOrValue(c, jp.Rarity, jp.Name) && editionSatisfied(c, jp.Edition) {
						counts[lane]++
					}
				}
			}
		}
	}
	return counts
}

type itemsShopItem = items.ShopItem

func matchesJokerItem(c models.Clause, it items.ShopItem) bool {
	if it.Excluded || it.Category != models.CategoryJoker {
		return false
	}
	if !matchesWildcardOrValue(c, it.Rarity, it.Name) {
		return false
	}
	if !editionSatisfied(c, it.Edition) {
		return false
	}
	if c.Stickers != 0 && it.Stickers&c.Stickers != c.Stickers {
		return false
	}
	return true
}

func editionSatisfied(c models.Clause, have models.Edition) bool {
	if c.Edition == models.EditionNone {
		return true
	}
	return have == c.Edition
}

// soulJokerNode implements the SoulJoker clause: a vectorized pre-filter
// against the would-be joker, then a per-lane verify that a Soul card is
// actually reachable in an allowed pack slot.
type soulJokerNode struct{ clause models.Clause }

func (n *soulJokerNode) Eval(vc *items.VectorContext) vector.Mask {
	c := n.clause
	candidate := vector.NoBitsSet
	perAnteJoker := map[int]vector.LaneVec[items.JokerPick]{}

	for _, ante := range c.Antes {
		stream := vc.SoulJokerStream(ante)
		pick := stream.Next()
		perAnteJoker[ante] = pick
		candidate = candidate.Or(vector.MatchMask(pick, func(jp items.JokerPick) bool {
			return matchesWildcardOrValue(c, jp.Rarity, jp.Name) && editionSatisfied(c, jp.Edition)
		}))
	}
	if candidate.AllFalse() {
		return candidate
	}

	var verified vector.Mask
	for lane := 0; lane < vector.LaneCount; lane++ {
		if !candidate.Lane(lane) {
			continue
		}
		single := vc.Lane(lane)
		for _, ante := range c.Antes {
			jp := perAnteJoker[ante][lane]
			if !matchesWildcardOrValue(c, jp.Rarity, jp.Name) || !editionSatisfied(c, jp.Edition) {
				continue
			}
			if n.soulReachable(single, ante, c) {
				verified = verified.SetLane(lane, true)
				break
			}
		}
	}
	return verified
}

// soulReachable walks ante's Arcana and Spectral packs looking for a Soul
// card in a clause-allowed pack slot.
func (n *soulJokerNode) soulReachable(single *items.SingleContext, ante int, c models.Clause) bool {
	arcana := single.ArcanaPackStream(ante)
	for {
		cards, start, ok := arcana.NextContents()
		if !ok {
			break
		}
		for i, card := range cards {
			if card.IsSoul && slotSelected(c.PackSlotMask, start+i) {
				return true
			}
		}
	}
	spectral := single.SpectralPackStream(ante)
	for {
		cards, start, ok := spectral.NextContents()
		if !ok {
			break
		}
		for i, card := range cards {
			if card.IsSoul && slotSelected(c.PackSlotMask, start+i) {
				return true
			}
		}
	}
	return false
}

const shopSlotsPerAnteCap = items.ShopSlotsPerAnte
const packsPerAnteCap = items.PacksPerAnte
