package filter

import (
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// voucherNode implements ante-ordered voucher activation — once a voucher
// fires, every later ante that draws it as its base voucher yields the
// upgrade instead (never the ante it fired in), so every evaluation walks
// antes 1..max in order, replaying activations as it goes.
type voucherNode struct{ clause models.Clause }

func (n *voucherNode) Eval(vc *items.VectorContext) vector.Mask {
	c := n.clause
	_, maxAnte := c.AnteRange()
	if maxAnte < 1 {
		return vector.NoBitsSet
	}
	rs := items.NewVectorRunState()
	mask := vector.NoBitsSet
	for ante := 1; ante <= maxAnte; ante++ {
		voucher := vc.AnteFirstVoucher(ante, rs)
		if c.HasAnte(ante) {
			mask = mask.Or(vector.MatchMask(voucher, func(v string) bool {
				return c.Wildcard == models.WildcardAny || c.Value == "" || v == c.Value
			}))
		}
		rs.Activate(voucher)
	}
	return mask
}

// Count implements filter.Counter for Voucher clauses: number of matching
// antes within the clause's ante range.
func (n *voucherNode) Count(vc *items.VectorContext) [vector.LaneCount]int {
	c := n.clause
	var counts [vector.LaneCount]int
	_, maxAnte := c.AnteRange()
	if maxAnte < 1 {
		return counts
	}
	rs := items.NewVectorRunState()
	for ante := 1; ante <= maxAnte; ante++ {
		voucher := vc.AnteFirstVoucher(ante, rs)
		if c.HasAnte(ante) {
			for lane := 0; lane < vector.LaneCount; lane++ {
				if c.Wildcard == models.WildcardAny || c.Value == "" || voucher[lane] == c.Value {
					counts[lane]++
				}
			}
		}
		rs.Activate(voucher)
	}
	return counts
}
