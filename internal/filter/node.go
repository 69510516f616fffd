// Package filter builds the tree of specialized nodes — one node type
// per clause category, composed with And/Or/Not combinators — and
// evaluates it against an 8-lane seed batch, returning a vector.Mask of
// which lanes still satisfy the clause.
package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// Node is one evaluable unit of a query's Must/Should/MustNot tree: either
// a category-specific leaf or an And/Or/Not combinator.
type Node interface {
	Eval(vc *items.VectorContext) vector.Mask
}

// Counter is implemented by leaves whose occurrence count is meaningful
// for Should scoring (score = Σ should_k.score × count_k(seed)). Nodes
// that don't implement it (SoulJoker, PlayingCard's per-lane
// fallback, and the And/Or/Not combinators) score as a 0/1 match via
// CountOf's Eval fallback — composing an occurrence count across a nested
// boolean tree has no single natural definition, so this engine keeps the
// literal count only where a clause names one concrete, countable stream.
type Counter interface {
	Count(vc *items.VectorContext) [vector.LaneCount]int
}

// CountOf returns n's occurrence count per lane, using its Counter
// implementation when present and otherwise a 0/1 fallback from Eval.
func CountOf(n Node, vc *items.VectorContext) [vector.LaneCount]int {
	if c, ok := n.(Counter); ok {
		return c.Count(vc)
	}
	mask := n.Eval(vc)
	var out [vector.LaneCount]int
	for i := 0; i < vector.LaneCount; i++ {
		if mask.Lane(i) {
			out[i] = 1
		}
	}
	return out
}

// Build is the category mapper: it resolves a normalized Clause to the
// Node implementation that knows how to evaluate it.
func Build(c models.Clause) Node {
	switch c.Category {
	case models.CategoryJoker:
		return &jokerNode{clause: c}
	case models.CategorySoulJoker:
		return &soulJokerNode{clause: c}
	case models.CategoryTarot:
		return &consumableNode{clause: c, kind: consumableTarot}
	case models.CategoryPlanet:
		return &consumableNode{clause: c, kind: consumablePlanet}
	case models.CategorySpectral:
		return &consumableNode{clause: c, kind: consumableSpectral}
	case models.CategoryPlayingCard:
		return &playingCardNode{clause: c}
	case models.CategoryVoucher:
		return &voucherNode{clause: c}
	case models.CategoryTag, models.CategorySmallBlindTag, models.CategoryBigBlindTag:
		return &tagNode{clause: c}
	case models.CategoryBoss:
		return &bossNode{clause: c}
	case models.CategoryAnd:
		return newAndNode(c)
	case models.CategoryOr:
		return newOrNode(c)
	case models.CategoryNot:
		return newNotNode(c)
	default:
		return noneNode{}
	}
}

// noneNode matches nothing; a defensive fallback for an unrecognized
// category that somehow survived normalization.
type noneNode struct{}

func (noneNode) Eval(*items.VectorContext) vector.Mask { return vector.NoBitsSet }

func matchesWildcardOrValue(c models.Clause, rarity items.Rarity, name string) bool {
	if c.Wildcard == models.WildcardNone {
		return name == c.Value
	}
	switch c.Wildcard {
	case models.WildcardAny:
		return true
	case models.WildcardAnyCommon:
		return rarity == items.RarityCommon
	case models.WildcardAnyUncommon:
		return rarity == items.RarityUncommon
	case models.WildcardAnyRare:
		return rarity == items.RarityRare
	case models.WildcardAnyLegendary:
		return rarity == items.RarityLegendary
	default:
		return false
	}
}

func slotSelected(mask uint64, slot int) bool {
	if mask == 0 {
		return true // unscoped clause: every slot counts by default
	}
	if slot < 0 || slot >= 64 {
		return false
	}
	return mask&(1<<uint(slot)) != 0
}
