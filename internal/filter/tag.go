package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// tagNode implements the SmallBlindTag/BigBlindTag/generic Tag clauses,
// scoped by TagScope.
type tagNode struct{ clause models.Clause }

func (n *tagNode) Eval(vc *items.VectorContext) vector.Mask {
	c := n.clause
	mask := vector.NoBitsSet
	for _, ante := range c.Antes {
		stream := vc.TagStream(ante)
		small, big := stream.Next()
		if c.TagScope == models.TagScopeEither || c.TagScope == models.TagScopeSmall {
			mask = mask.Or(vector.MatchMask(small, func(v string) bool { return matchesTagValue(c, v) }))
		}
		if c.TagScope == models.TagScopeEither || c.TagScope == models.TagScopeBig {
			mask = mask.Or(vector.MatchMask(big, func(v string) bool { return matchesTagValue(c, v) }))
		}
	}
	return mask
}

// Count implements filter.Counter for Tag clauses.
func (n *tagNode) Count(vc *items.VectorContext) [vector.LaneCount]int {
	c := n.clause
	var counts [vector.LaneCount]int
	for _, ante := range c.Antes {
		small, big := vc.TagStream(ante).Next()
		for lane := 0; lane < vector.LaneCount; lane++ {
			if c.TagScope != models.TagScopeBig && matchesTagValue(c, small[lane]) {
				counts[lane]++
			}
			if c.TagScope != models.TagScopeSmall && matchesTagValue(c, big[lane]) {
				counts[lane]++
			}
		}
	}
	return counts
}

func matchesTagValue(c models.Clause, v string) bool {
	return c.Wildcard == models.WildcardAny || c.Value == "" || v == c.Value
}

// bossNode implements the Boss clause.
type bossNode struct{ clause models.Clause }

func (n *bossNode) Eval(vc *items.VectorContext) vector.Mask {
	c := n.clause
	mask := vector.NoBitsSet
	for _, ante := range c.Antes {
		boss := vc.BossBlind(ante)
		mask = mask.Or(vector.MatchMask(boss, func(v string) bool {
			return c.Wildcard == models.WildcardAny || c.Value == "" || v == c.Value
		}))
	}
	return mask
}

// Count implements filter.Counter for Boss clauses.
func (n *bossNode) Count(vc *items.VectorContext) [vector.LaneCount]int {
	c := n.clause
	var counts [vector.LaneCount]int
	for _, ante := range c.Antes {
		boss := vc.BossBlind(ante)
		for lane := 0; lane < vector.LaneCount; lane++ {
			if c.Wildcard == models.WildcardAny || c.Value == "" || boss[lane] == c.Value {
				counts[lane]++
			}
		}
	}
	return counts
}
