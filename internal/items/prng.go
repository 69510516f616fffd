// Package items is the deterministic item-generation model the core
// filter/scoring pipeline consumes but does not itself specify. The
// concrete card-weighting rules of the real game are assumed; what this
// package guarantees is the *contract* — a reproducible,
// lane-synchronized PRNG stream per (seed, ante, stream-tag) — which is
// all the core cares about.
package items

import "hash/fnv"

// laneStream is a deterministic pseudo-random sequence keyed by a single
// seed string, one game ante, and a stream tag (e.g. "shopslot", "voucher",
// "tag-small"). Each call to next draws the call-indexed value, so the
// sequence is reproducible without retaining a stateful generator.
type laneStream struct {
	seed  string
	ante  int
	tag   string
	calls int
}

func newLaneStream(seed string, ante int, tag string) *laneStream {
	return &laneStream{seed: seed, ante: ante, tag: tag}
}

// next returns the next deterministic uint64 in this lane's sequence and
// advances the call counter.
func (s *laneStream) next() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s.seed))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write(uitoa(uint64(s.ante)))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(s.tag))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write(uitoa(uint64(s.calls)))
	s.calls++
	return h.Sum64()
}

// pick deterministically selects one of n buckets (n > 0).
func (s *laneStream) pick(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.next() % uint64(n))
}

// chance returns true with probability num/den (den > 0), used for rare
// drop gates such as "does this pack contain The Soul".
func (s *laneStream) chance(num, den int) bool {
	if den <= 0 {
		return false
	}
	return int(s.next()%uint64(den)) < num
}

func uitoa(v uint64) []byte {
	if v == 0 {
		return []byte{'0'}
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return buf[i:]
}
