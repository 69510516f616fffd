package items

import "github.com/rawblock/seedscan/internal/vector"

// VectorContext is the 8-lane batch context: a thin fan-out over 8
// SingleContexts, one per candidate seed in the batch. Every vector
// accessor calls the scalar single-lane accessor 8 times, preserving the
// lockstep-call invariant; building it this way means the single-lane
// path used by the per-lane fallback and the vector path share one
// implementation of every generation rule.
type VectorContext struct {
	lanes [vector.LaneCount]*SingleContext
}

func NewVectorContext(seeds [vector.LaneCount]string) *VectorContext {
	var vc VectorContext
	for i, s := range seeds {
		vc.lanes[i] = NewSingleContext(s)
	}
	return &vc
}

func (vc *VectorContext) Lane(i int) *SingleContext { return vc.lanes[i] }

// SoulJokerStream ------------------------------------------------------

type VectorSoulJokerStream struct{ lanes [vector.LaneCount]*SoulJokerStream }

func (vc *VectorContext) SoulJokerStream(ante int) *VectorSoulJokerStream {
	var s VectorSoulJokerStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].SoulJokerStream(ante)
	}
	return &s
}

func (s *VectorSoulJokerStream) Next() vector.LaneVec[JokerPick] {
	return vector.Build(func(i int) JokerPick { return s.lanes[i].Next() })
}

// ShopItemStream ---------------------------------------------------------

type VectorShopItemStream struct{ lanes [vector.LaneCount]*ShopItemStream }

func (vc *VectorContext) ShopItemStream(ante int) *VectorShopItemStream {
	var s VectorShopItemStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].ShopItemStream(ante)
	}
	return &s
}

func (s *VectorShopItemStream) Next() vector.LaneVec[ShopItem] {
	return vector.Build(func(i int) ShopItem { return s.lanes[i].Next() })
}

// Self-contained consumable shop streams ----------------------------------

type VectorShopConsumableStream struct{ lanes [vector.LaneCount]*ShopConsumableStream }

func (vc *VectorContext) ShopTarotStream(ante int) *VectorShopConsumableStream {
	var s VectorShopConsumableStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].ShopTarotStream(ante)
	}
	return &s
}

func (vc *VectorContext) ShopPlanetStream(ante int) *VectorShopConsumableStream {
	var s VectorShopConsumableStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].ShopPlanetStream(ante)
	}
	return &s
}

func (vc *VectorContext) ShopSpectralStream(ante int) *VectorShopConsumableStream {
	var s VectorShopConsumableStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].ShopSpectralStream(ante)
	}
	return &s
}

func (s *VectorShopConsumableStream) Next() vector.LaneVec[ShopItem] {
	return vector.Build(func(i int) ShopItem { return s.lanes[i].Next() })
}

// Booster pack stream ------------------------------------------------

type VectorPackStream struct{ lanes [vector.LaneCount]*PackStream }

func (vc *VectorContext) BoosterPackStream(ante int) *VectorPackStream {
	var s VectorPackStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].BoosterPackStream(ante)
	}
	return &s
}

func (s *VectorPackStream) Next() vector.LaneVec[PackInfo] {
	return vector.Build(func(i int) PackInfo { return s.lanes[i].Next() })
}

// Arcana / Celestial / Spectral / Standard pack content streams ----------

type VectorArcanaStream struct{ lanes [vector.LaneCount]*ArcanaStream }

func (vc *VectorContext) ArcanaPackStream(ante int) *VectorArcanaStream {
	var s VectorArcanaStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].ArcanaPackStream(ante)
	}
	return &s
}

// NextContents returns, per lane, the pack's cards, its slot start, and
// whether that lane even has another Arcana pack this ante.
func (s *VectorArcanaStream) NextContents() (cards [vector.LaneCount][]CardPick, slotStart [vector.LaneCount]int, ok vector.Mask) {
	for i := range s.lanes {
		c, start, present := s.lanes[i].NextContents()
		cards[i] = c
		slotStart[i] = start
		ok = ok.SetLane(i, present)
	}
	return cards, slotStart, ok
}

type VectorCelestialStream struct{ lanes [vector.LaneCount]*CelestialStream }

func (vc *VectorContext) CelestialPackStream(ante int) *VectorCelestialStream {
	var s VectorCelestialStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].CelestialPackStream(ante)
	}
	return &s
}

func (s *VectorCelestialStream) NextContents() (cards [vector.LaneCount][]CardPick, slotStart [vector.LaneCount]int, ok vector.Mask) {
	for i := range s.lanes {
		c, start, present := s.lanes[i].NextContents()
		cards[i] = c
		slotStart[i] = start
		ok = ok.SetLane(i, present)
	}
	return cards, slotStart, ok
}

type VectorSpectralStream struct{ lanes [vector.LaneCount]*SpectralStream }

func (vc *VectorContext) SpectralPackStream(ante int) *VectorSpectralStream {
	var s VectorSpectralStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].SpectralPackStream(ante)
	}
	return &s
}

func (s *VectorSpectralStream) NextContents() (cards [vector.LaneCount][]CardPick, slotStart [vector.LaneCount]int, ok vector.Mask) {
	for i := range s.lanes {
		c, start, present := s.lanes[i].NextContents()
		cards[i] = c
		slotStart[i] = start
		ok = ok.SetLane(i, present)
	}
	return cards, slotStart, ok
}

type VectorStandardStream struct{ lanes [vector.LaneCount]*StandardStream }

func (vc *VectorContext) StandardPackStream(ante int) *VectorStandardStream {
	var s VectorStandardStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].StandardPackStream(ante)
	}
	return &s
}

func (s *VectorStandardStream) NextContents() (cards [vector.LaneCount][]PlayingCard, slotStart [vector.LaneCount]int, ok vector.Mask) {
	for i := range s.lanes {
		c, start, present := s.lanes[i].NextContents()
		cards[i] = c
		slotStart[i] = start
		ok = ok.SetLane(i, present)
	}
	return cards, slotStart, ok
}

type VectorBuffoonStream struct{ lanes [vector.LaneCount]*BuffoonStream }

func (vc *VectorContext) BuffoonPackStream(ante int) *VectorBuffoonStream {
	var s VectorBuffoonStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].BuffoonPackStream(ante)
	}
	return &s
}

func (s *VectorBuffoonStream) NextContents() (jokers [vector.LaneCount][]JokerPick, slotStart [vector.LaneCount]int, ok vector.Mask) {
	for i := range s.lanes {
		j, start, present := s.lanes[i].NextContents()
		jokers[i] = j
		slotStart[i] = start
		ok = ok.SetLane(i, present)
	}
	return jokers, slotStart, ok
}

// Tags ---------------------------------------------------------------

type VectorTagStream struct{ lanes [vector.LaneCount]*TagStream }

func (vc *VectorContext) TagStream(ante int) *VectorTagStream {
	var s VectorTagStream
	for i := range vc.lanes {
		s.lanes[i] = vc.lanes[i].TagStream(ante)
	}
	return &s
}

func (s *VectorTagStream) Next() (small, big vector.LaneVec[string]) {
	for i := range s.lanes {
		small[i], big[i] = s.lanes[i].Next()
	}
	return small, big
}

// Vouchers --------------------------------------------------------------

// VectorRunState tracks per-lane voucher-upgrade state across an ante walk.
type VectorRunState struct{ lanes [vector.LaneCount]*RunState }

func NewVectorRunState() *VectorRunState {
	var rs VectorRunState
	for i := range rs.lanes {
		rs.lanes[i] = NewRunState()
	}
	return &rs
}

func (rs *VectorRunState) Activate(voucher vector.LaneVec[string]) {
	for i := range rs.lanes {
		rs.lanes[i].ActivateVoucher(voucher[i])
	}
}

func (vc *VectorContext) AnteFirstVoucher(ante int, rs *VectorRunState) vector.LaneVec[string] {
	return vector.Build(func(i int) string { return vc.lanes[i].AnteFirstVoucher(ante, rs.lanes[i]) })
}

func (vc *VectorContext) BossBlind(ante int) vector.LaneVec[string] {
	return vector.Build(func(i int) string { return vc.lanes[i].BossBlind(ante) })
}
