package vector

// LaneVec is the portable value type used in place of SIMD intrinsics: a
// fixed array of LaneCount scalars, one per lane. Every item-generation
// accessor in internal/items returns one of these instead of a scalar, so
// stream cursors advance the same number of times on every lane by
// construction — there is no code path that touches fewer than 8 lanes
// at once.
type LaneVec[T any] [LaneCount]T

// Build fills a LaneVec by calling f once per lane index; f is expected to
// be the single-lane accessor that backs every vector constructor.
func Build[T any](f func(lane int) T) LaneVec[T] {
	var v LaneVec[T]
	for i := 0; i < LaneCount; i++ {
		v[i] = f(i)
	}
	return v
}

// MatchMask compares every lane against pred, returning the Mask of lanes
// where pred holds.
func MatchMask[T any](v LaneVec[T], pred func(T) bool) Mask {
	var m Mask
	for i := 0; i < LaneCount; i++ {
		if pred(v[i]) {
			m = m.SetLane(i, true)
		}
	}
	return m
}
