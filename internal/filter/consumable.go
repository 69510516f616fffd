package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// consumableKind selects which of Tarot/Planet/Spectral a consumableNode
// scans for.
type consumableKind int

const (
	consumableTarot consumableKind = iota
	consumablePlanet
	consumableSpectral
)

type consumableNode struct {
	clause models.Clause
	kind   consumableKind
}

func (n *consumableNode) Eval(vc *items.VectorContext) vector.Mask {
	c := n.clause
	mask := vector.NoBitsSet
	for _, ante := range c.Antes {
		mask = mask.Or(n.scanShop(vc, ante))
		mask = mask.Or(n.scanPacks(vc, ante))
	}
	return mask
}

func (n *consumableNode) scanShop(vc *items.VectorContext, ante int) vector.Mask {
	c := n.clause
	var stream *items.VectorShopConsumableStream
	switch n.kind {
	case consumableTarot:
		stream = vc.ShopTarotStream(ante)
	case consumablePlanet:
		stream = vc.ShopPlanetStream(ante)
	case consumableSpectral:
		stream = vc.ShopSpectralStream(ante)
	}
	mask := vector.NoBitsSet
	for slot := 0; slot < shopSlotsPerAnteCap; slot++ {
		pick := stream.Next()
		if !slotSelected(c.ShopSlotMask, slot) {
			continue
		}
		mask = mask.Or(vector.MatchMask(pick, func(it items.ShopItem) bool {
			return !it.Excluded && matchesConsumableValue(c, it.Name) && editionSatisfied(c, it.Edition)
		}))
	}
	return mask
}

func (n *consumableNode) scanPacks(vc *items.VectorContext, ante int) vector.Mask {
	c := n.clause
	if c.PackSlotMask == 0 && !c.RequireMega {
		// Unscoped clauses still check packs by default: no slot mask
		// means every slot counts, so fall through.
	}
	mask := vector.NoBitsSet
	switch n.kind {
	case consumableTarot:
		stream := vc.ArcanaPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := stream.NextContents()
			if ok.AllFalse() {
				break
			}
			mask = mask.Or(scanCardLanes(ok, cards, starts, c, false))
		}
	case consumablePlanet:
		stream := vc.CelestialPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := stream.NextContents()
			if ok.AllFalse() {
				break
			}
			mask = mask.Or(scanCardLanes(ok, cards, starts, c, false))
		}
	case consumableSpectral:
		stream := vc.SpectralPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := stream.NextContents()
			if ok.AllFalse() {
				break
			}
			mask = mask.Or(scanCardLanes(ok, cards, starts, c, true))
		}
		arcana := vc.ArcanaPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := arcana.NextContents()
			if ok.AllFalse() {
				break
			}
			mask = mask.Or(scanCardLanes(ok, cards, starts, c, true))
		}
	}
	return mask
}

// scanCardLanes checks every lane's pack contents for a match. When
// soulAsSpectral is set, only Spectral cards are considered, and a Soul
// card counts as satisfying a Spectral clause naming "TheSoul" or a
// wildcard.
func scanCardLanes(ok vector.Mask, cards [vector.LaneCount][]items.CardPick, starts [vector.LaneCount]int, c models.Clause, soulAsSpectral bool) vector.Mask {
	var mask vector.Mask
	for lane := 0; lane < vector.LaneCount; lane++ {
		if !ok.Lane(lane) {
			continue
		}
		for i, card := range cards[lane] {
			if card.IsSoul && !soulAsSpectral {
				continue
			}
			if soulAsSpectral && card.Category != models.CategorySpectral {
				continue
			}
			if !slotSelected(c.PackSlotMask, starts[lane]+i) {
				continue
			}
			if matchesConsumableValue(c, card.Name) {
				mask = mask.SetLane(lane, true)
				break
			}
		}
	}
	return mask
}

// Count implements filter.Counter for Tarot/Planet/Spectral clauses.
func (n *consumableNode) Count(vc *items.VectorContext) [vector.LaneCount]int {
	c := n.clause
	var counts [vector.LaneCount]int
	for _, ante := range c.Antes {
		shop := n.shopStream(vc, ante)
		for slot := 0; slot < shopSlotsPerAnteCap; slot++ {
			batch := shop.Next()
			if !slotSelected(c.ShopSlotMask, slot) {
				continue
			}
			for lane := 0; lane < vector.LaneCount; lane++ {
				it := batch[lane]
				if !it.Excluded && matchesConsumableValue(c, it.Name) && editionSatisfied(c, it.Edition) {
					counts[lane]++
				}
			}
		}
		n.countPacks(vc, ante, &counts)
	}
	return counts
}

func (n *consumableNode) shopStream(vc *items.VectorContext, ante int) *items.VectorShopConsumableStream {
	switch n.kind {
	case consumableTarot:
		return vc.ShopTarotStream(ante)
	case consumablePlanet:
		return vc.ShopPlanetStream(ante)
	default:
		return vc.ShopSpectralStream(ante)
	}
}

func (n *consumableNode) countPacks(vc *items.VectorContext, ante int, counts *[vector.LaneCount]int) {
	c := n.clause
	addCounts := func(cards [vector.LaneCount][]items.CardPick, starts [vector.LaneCount]int, ok vector.Mask, soulAsSpectral bool) {
		for lane := 0; lane < vector.LaneCount; lane++ {
			if !ok.Lane(lane) {
				continue
			}
			for i, card := range cards[lane] {
				if card.IsSoul && !soulAsSpectral {
					continue
				}
				if soulAsSpectral && card.Category != models.CategorySpectral {
					continue
				}
				if slotSelected(c.PackSlotMask, starts[lane]+i) && matchesConsumableValue(c, card.Name) {
					counts[lane]++
				}
			}
		}
	}
	switch n.kind {
	case consumableTarot:
		stream := vc.ArcanaPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := stream.NextContents()
			if ok.AllFalse() {
				break
			}
			addCounts(cards, starts, ok, false)
		}
	case consumablePlanet:
		stream := vc.CelestialPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := stream.NextContents()
			if ok.AllFalse() {
				break
			}
			addCounts(cards, starts, ok, false)
		}
	case consumableSpectral:
		stream := vc.SpectralPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := stream.NextContents()
			if ok.AllFalse() {
				break
			}
			addCounts(cards, starts, ok, true)
		}
		arcana := vc.ArcanaPackStream(ante)
		for pack := 0; pack < packsPerAnteCap; pack++ {
			cards, starts, ok := arcana.NextContents()
			if ok.AllFalse() {
				break
			}
			addCounts(cards, starts, ok, true)
		}
	}
}

func matchesConsumableValue(c models.Clause, name string) bool {
	if c.Wildcard == models.WildcardAny || c.Value == "" {
		return true
	}
	return name == c.Value
}
