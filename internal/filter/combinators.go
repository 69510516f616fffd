package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// andNode implements the And combinator: when the group itself names an
// explicit ante list, each ante is evaluated as its own clone of the
// nested clauses (restricted to that single ante) ANDed together, and
// the per-ante results are ORed — "in the same ante, all of these must
// hold". Without a group ante list, the nested clauses simply AND using
// whichever antes they already carry individually.
type andNode struct {
	nested     []models.Clause
	groupAntes []int
	plain      []Node
	// perAnte[i] holds the nested clauses restricted to groupAntes[i] and
	// already built into Nodes; the restrict-and-Build expansion runs once
	// here at construction time, not on every Eval call.
	perAnte [][]Node
}

func newAndNode(c models.Clause) *andNode {
	n := &andNode{nested: c.Nested, groupAntes: c.GroupAntes}
	if len(n.groupAntes) == 0 {
		for _, nc := range c.Nested {
			n.plain = append(n.plain, Build(nc))
		}
		return n
	}
	n.perAnte = make([][]Node, len(n.groupAntes))
	for i, ante := range n.groupAntes {
		nodes := make([]Node, len(n.nested))
		for j, nc := range n.nested {
			nodes[j] = Build(restrictToAnte(nc, ante))
		}
		n.perAnte[i] = nodes
	}
	return n
}

func (n *andNode) Eval(vc *items.VectorContext) vector.Mask {
	if len(n.nested) == 0 {
		// An empty "and" group fails all lanes, unlike a bare
		// Composite(children) of an empty Must list, which is vacuously
		// true — those are different callers.
		return vector.NoBitsSet
	}
	if len(n.groupAntes) == 0 {
		mask := vector.AllBitsSet
		for _, node := range n.plain {
			mask = mask.And(node.Eval(vc))
			if mask.AllFalse() {
				break
			}
		}
		return mask
	}

	result := vector.NoBitsSet
	for _, nodes := range n.perAnte {
		per := vector.AllBitsSet
		for _, node := range nodes {
			per = per.And(node.Eval(vc))
			if per.AllFalse() {
				break
			}
		}
		result = result.Or(per)
		if result == vector.AllBitsSet {
			break
		}
	}
	return result
}

// orNode implements the Or combinator: each nested clause is evaluated
// independently (with its own antes) and the results ORed — "any one of
// these branches satisfies the group".
type orNode struct{ children []Node }

func newOrNode(c models.Clause) *orNode {
	n := &orNode{}
	for _, nc := range c.Nested {
		n.children = append(n.children, Build(nc))
	}
	return n
}

func (n *orNode) Eval(vc *items.VectorContext) vector.Mask {
	mask := vector.NoBitsSet
	for _, child := range n.children {
		mask = mask.Or(child.Eval(vc))
		if mask == vector.AllBitsSet {
			break
		}
	}
	return mask
}

// notNode implements the Not combinator: complement of its single
// nested clause's mask.
type notNode struct{ child Node }

func newNotNode(c models.Clause) *notNode {
	if len(c.Nested) != 1 {
		return &notNode{child: noneNode{}}
	}
	return &notNode{child: Build(c.Nested[0])}
}

func (n *notNode) Eval(vc *items.VectorContext) vector.Mask {
	return n.child.Eval(vc).Not()
}

// restrictToAnte clones c with its ante set replaced by the single ante
// (and nested clauses restricted recursively), used by andNode's per-ante
// expansion.
func restrictToAnte(c models.Clause, ante int) models.Clause {
	clone := c
	if ante == 0 {
		// Ante 0 has no associated stream; an empty Antes list makes
		// every leaf node's per-ante loop a no-op, which is exactly
		// "matches nothing".
		clone.Antes = nil
	} else {
		clone.Antes = []int{ante}
	}
	clone.AntesMask = [models.MaxAnte + 1]bool{}
	if ante > 0 && ante <= models.MaxAnte {
		clone.AntesMask[ante] = true
	}
	if len(c.Nested) > 0 {
		clone.Nested = make([]models.Clause, len(c.Nested))
		for i, nc := range c.Nested {
			clone.Nested[i] = restrictToAnte(nc, ante)
		}
	}
	return clone
}
