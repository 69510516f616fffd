package vector

import "testing"

func TestMaskAndIsIdentityOnAllBitsSet(t *testing.T) {
	m := Mask(0b01010101)
	if got := m.And(AllBitsSet); got != m {
		t.Fatalf("m.And(AllBitsSet) = %08b, want %08b", got, m)
	}
}

func TestMaskOrIsIdentityOnNoBitsSet(t *testing.T) {
	m := Mask(0b01010101)
	if got := m.Or(NoBitsSet); got != m {
		t.Fatalf("m.Or(NoBitsSet) = %08b, want %08b", got, m)
	}
}

func TestMaskAndMonotonicallyNarrows(t *testing.T) {
	a := Mask(0b11110000)
	b := Mask(0b11001100)
	got := a.And(b)
	if got.PopCount() > a.PopCount() || got.PopCount() > b.PopCount() {
		t.Fatalf("And grew the set of live lanes: a=%08b b=%08b got=%08b", a, b, got)
	}
	for i := 0; i < LaneCount; i++ {
		if got.Lane(i) && !(a.Lane(i) && b.Lane(i)) {
			t.Fatalf("lane %d set in And result but not in both operands", i)
		}
	}
}

func TestMaskNotDoubleNegationIsIdentity(t *testing.T) {
	m := Mask(0b10110010)
	if got := m.Not().Not(); got != m {
		t.Fatalf("Not(Not(m)) = %08b, want %08b", got, m)
	}
}

func TestMaskAllFalseAndAnyTrueAreComplementary(t *testing.T) {
	if !NoBitsSet.AllFalse() {
		t.Fatal("NoBitsSet.AllFalse() should be true")
	}
	if NoBitsSet.AnyTrue() {
		t.Fatal("NoBitsSet.AnyTrue() should be false")
	}
	if AllBitsSet.AllFalse() {
		t.Fatal("AllBitsSet.AllFalse() should be false")
	}
	if !AllBitsSet.AnyTrue() {
		t.Fatal("AllBitsSet.AnyTrue() should be true")
	}
}

func TestMaskSetLaneRoundTrips(t *testing.T) {
	m := NoBitsSet
	for i := 0; i < LaneCount; i++ {
		m = m.SetLane(i, i%2 == 0)
	}
	for i := 0; i < LaneCount; i++ {
		want := i%2 == 0
		if got := m.Lane(i); got != want {
			t.Fatalf("lane %d = %v, want %v", i, got, want)
		}
	}
}

func TestMaskLanesListsSetBitsAscending(t *testing.T) {
	m := LaneMask(1).Or(LaneMask(4)).Or(LaneMask(7))
	got := m.Lanes()
	want := []int{1, 4, 7}
	if len(got) != len(want) {
		t.Fatalf("Lanes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Lanes() = %v, want %v", got, want)
		}
	}
}

func TestBuildAdvancesEveryLaneIndependently(t *testing.T) {
	v := Build(func(lane int) int { return lane * lane })
	for i := 0; i < LaneCount; i++ {
		if v[i] != i*i {
			t.Fatalf("lane %d = %d, want %d", i, v[i], i*i)
		}
	}
}

func TestMatchMaskSelectsOnlyMatchingLanes(t *testing.T) {
	v := Build(func(lane int) int { return lane })
	m := MatchMask(v, func(x int) bool { return x >= 5 })
	for i := 0; i < LaneCount; i++ {
		want := i >= 5
		if got := m.Lane(i); got != want {
			t.Fatalf("lane %d = %v, want %v", i, got, want)
		}
	}
}
