package items

import "github.com/rawblock/seedscan/pkg/models"

// SingleContext is the per-lane (single-seed) item generation context
// used for the per-lane verify/fallback pass — it is instantiated on
// demand and discarded at the end of that pass.
type SingleContext struct {
	Seed string
}

func NewSingleContext(seed string) *SingleContext {
	return &SingleContext{Seed: seed}
}

// PacksPerAnte is the fixed pack count per ante in this assumed generation
// model (the real card-weighting rules are out of scope).
const PacksPerAnte = 4

// ShopSlotsPerAnte bounds how many shop slots a single ante offers.
const ShopSlotsPerAnte = 8

const packsPerAnte = PacksPerAnte

// --- Shop -------------------------------------------------------------

// ShopItem is what createShopItemStream yields per slot: the generic
// "what occupies this shop slot" view used by the Joker filter node.
type ShopItem struct {
	Category models.Category
	Name     string
	Rarity   Rarity
	Edition  models.Edition
	Stickers models.Sticker
	Excluded bool // ExcludedByStream sentinel
}

type shopSlotContent struct {
	category models.Category
	name     string
	rarity   Rarity
	edition  models.Edition
	stickers models.Sticker
}

// shopSlotDraw is the pure function backing every shop "view" — the Joker
// stream, and the self-contained Tarot/Planet/Spectral streams all read
// the same deterministic per-slot content so their views agree on what
// occupies a given slot.
func (c *SingleContext) shopSlotDraw(ante, slot int) shopSlotContent {
	s := newLaneStream(c.Seed, ante, "shopslot")
	s.calls = slot // pure function of slot index
	roll := s.pick(100)
	switch {
	case roll < 45:
		return c.rollJokerSlot(ante, slot)
	case roll < 65:
		return shopSlotContent{category: models.CategoryTarot, name: pickFrom(c.Seed, ante, "shop-tarot-name", slot, Tarots)}
	case roll < 80:
		return shopSlotContent{category: models.CategoryPlanet, name: pickFrom(c.Seed, ante, "shop-planet-name", slot, Planets)}
	case roll < 90:
		return shopSlotContent{category: models.CategorySpectral, name: pickFrom(c.Seed, ante, "shop-spectral-name", slot, Spectrals)}
	default:
		return shopSlotContent{category: models.CategoryPlayingCard, name: "card"}
	}
}

func (c *SingleContext) rollJokerSlot(ante, slot int) shopSlotContent {
	name, rarity := pickJoker(c.Seed, ante, "shop-joker-name", slot)
	edStream := newLaneStream(c.Seed, ante, "shop-joker-edition")
	edStream.calls = slot
	stStream := newLaneStream(c.Seed, ante, "shop-joker-stickers")
	stStream.calls = slot
	return shopSlotContent{
		category: models.CategoryJoker,
		name:     name,
		rarity:   rarity,
		edition:  rollEdition(edStream),
		stickers: rollStickers(stStream),
	}
}

// ShopItemStream advances once per shop slot, returning whatever item
// (of any category) occupies that slot.
type ShopItemStream struct {
	ctx  *SingleContext
	ante int
	slot int
}

func (c *SingleContext) ShopItemStream(ante int) *ShopItemStream {
	return &ShopItemStream{ctx: c, ante: ante}
}

func (s *ShopItemStream) Next() ShopItem {
	d := s.ctx.shopSlotDraw(s.ante, s.slot)
	s.slot++
	return ShopItem{Category: d.category, Name: d.name, Rarity: d.rarity, Edition: d.edition, Stickers: d.stickers}
}

// ShopConsumableStream is the self-contained Tarot/Planet/Spectral shop
// view: every slot advances the stream, but a slot whose content isn't
// this stream's category yields the ExcludedByStream sentinel.
type ShopConsumableStream struct {
	ctx      *SingleContext
	ante     int
	slot     int
	category models.Category
}

func (c *SingleContext) ShopTarotStream(ante int) *ShopConsumableStream {
	return &ShopConsumableStream{ctx: c, ante: ante, category: models.CategoryTarot}
}
func (c *SingleContext) ShopPlanetStream(ante int) *ShopConsumableStream {
	return &ShopConsumableStream{ctx: c, ante: ante, category: models.CategoryPlanet}
}
func (c *SingleContext) ShopSpectralStream(ante int) *ShopConsumableStream {
	return &ShopConsumableStream{ctx: c, ante: ante, category: models.CategorySpectral}
}

func (s *ShopConsumableStream) Next() ShopItem {
	d := s.ctx.shopSlotDraw(s.ante, s.slot)
	s.slot++
	if d.category != s.category {
		return ShopItem{Excluded: true}
	}
	return ShopItem{Category: d.category, Name: d.name, Edition: d.edition}
}

// --- Soul joker ---------------------------------------------------------

type JokerPick struct {
	Name     string
	Rarity   Rarity
	Edition  models.Edition
	Excluded bool
}

// SoulJokerStream yields the legendary joker that The Soul card would
// currently produce at this ante, independent of whether a pack actually
// surfaces a Soul card this ante.
type SoulJokerStream struct {
	ctx  *SingleContext
	ante int
	idx  int
}

func (c *SingleContext) SoulJokerStream(ante int) *SoulJokerStream {
	return &SoulJokerStream{ctx: c, ante: ante}
}

func (s *SoulJokerStream) Next() JokerPick {
	name, _ := pickFromIdx(s.ctx.Seed, s.ante, "soul-joker", s.idx, SoulJokers)
	edStream := newLaneStream(s.ctx.Seed, s.ante, "soul-joker-edition")
	edStream.calls = s.idx
	s.idx++
	return JokerPick{Name: name, Rarity: RarityLegendary, Edition: rollEdition(edStream)}
}

// --- Booster packs --------------------------------------------------

type PackInfo struct {
	Type models.PackType
	Size models.PackSize
}

// PackStream walks the fixed sequence of packs opened during an ante.
type PackStream struct {
	ctx  *SingleContext
	ante int
	idx  int
}

func (c *SingleContext) BoosterPackStream(ante int) *PackStream {
	return &PackStream{ctx: c, ante: ante}
}

func (c *SingleContext) packInfo(ante, packIndex int) PackInfo {
	typeStream := newLaneStream(c.Seed, ante, "pack-type")
	typeStream.calls = packIndex
	roll := typeStream.pick(100)
	var t models.PackType
	switch {
	case roll < 28:
		t = models.PackTypeArcana
	case roll < 46:
		t = models.PackTypeCelestial
	case roll < 60:
		t = models.PackTypeSpectral
	case roll < 74:
		t = models.PackTypeStandard
	default:
		t = models.PackTypeBuffoon
	}

	sizeStream := newLaneStream(c.Seed, ante, "pack-size")
	sizeStream.calls = packIndex
	var size models.PackSize
	switch sizeStream.pick(100) {
	case 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14:
		size = models.PackSizeMega
	case 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34:
		size = models.PackSizeJumbo
	default:
		size = models.PackSizeNormal
	}
	return PackInfo{Type: t, Size: size}
}

func (s *PackStream) Next() PackInfo {
	p := s.ctx.packInfo(s.ante, s.idx)
	s.idx++
	return p
}

func (p PackInfo) GetPackType() models.PackType { return p.Type }
func (p PackInfo) GetPackSize() int             { return int(p.Size) }

// cardSlotRange returns the absolute [start, start+size) card-slot range
// that packIndex occupies within its ante: start is the sum of the
// (varying) sizes of the packs opened before it.
func (c *SingleContext) cardSlotRange(ante, packIndex int) (start, size int) {
	for i := 0; i < packIndex; i++ {
		_, sz := c.packInfo(ante, i).Type, c.packInfo(ante, i).Size
		start += int(sz)
	}
	size = int(c.packInfo(ante, packIndex).Size)
	return start, size
}

// --- Pack contents: Arcana / Celestial / Spectral / Standard -----------

type CardPick struct {
	Name     string
	IsSoul   bool
	Category models.Category
}

type PlayingCard struct {
	Suit        models.Suit
	Rank        models.Rank
	Seal        models.Seal
	Enhancement models.Enhancement
	Edition     models.Edition
}

// consumablePackCursor walks only the packs of one Type in ante order,
// exposing their contents and absolute slot range; this is the shared
// engine behind the Arcana/Celestial/Spectral content streams.
type consumablePackCursor struct {
	ctx        *SingleContext
	ante       int
	packType   models.PackType
	nextPack   int
	callIdx    int
}

func (c *SingleContext) newConsumableCursor(ante int, t models.PackType) *consumablePackCursor {
	return &consumablePackCursor{ctx: c, ante: ante, packType: t}
}

// advance finds the next pack of this cursor's type, returning its index
// and absolute card-slot start, or ok=false if the ante has no more.
func (cur *consumablePackCursor) advance() (packIndex, slotStart, size int, ok bool) {
	for i := cur.nextPack; i < packsPerAnte; i++ {
		info := cur.ctx.packInfo(cur.ante, i)
		if info.Type == cur.packType {
			start, sz := cur.ctx.cardSlotRange(cur.ante, i)
			cur.nextPack = i + 1
			cur.callIdx++
			return i, start, sz, true
		}
	}
	cur.nextPack = packsPerAnte
	return 0, 0, 0, false
}

type ArcanaStream struct{ cur *consumablePackCursor }

func (c *SingleContext) ArcanaPackStream(ante int) *ArcanaStream {
	return &ArcanaStream{cur: c.newConsumableCursor(ante, models.PackTypeArcana)}
}

// NextContents returns the tarot names (or "The Soul" marker) occupying
// the next Arcana pack, plus the absolute slot index of each card and
// whether the pack exists at all this ante.
func (a *ArcanaStream) NextContents() (cards []CardPick, slotStart int, ok bool) {
	packIndex, start, size, ok := a.cur.advance()
	if !ok {
		return nil, 0, false
	}
	soulStream := newLaneStream(a.cur.ctx.Seed, a.cur.ante, "arcana-soul")
	soulStream.calls = packIndex
	hasSoul := soulStream.chance(1, 6)
	cards = make([]CardPick, size)
	for i := 0; i < size; i++ {
		if hasSoul && i == size-1 {
			cards[i] = CardPick{Name: "TheSoul", IsSoul: true, Category: models.CategorySpectral}
			continue
		}
		name := pickFrom(a.cur.ctx.Seed, a.cur.ante, "arcana-card", packIndex*8+i, Tarots)
		cards[i] = CardPick{Name: name, Category: models.CategoryTarot}
	}
	return cards, start, true
}

type CelestialStream struct{ cur *consumablePackCursor }

func (c *SingleContext) CelestialPackStream(ante int) *CelestialStream {
	return &CelestialStream{cur: c.newConsumableCursor(ante, models.PackTypeCelestial)}
}

func (cs *CelestialStream) NextContents() (cards []CardPick, slotStart int, ok bool) {
	packIndex, start, size, ok := cs.cur.advance()
	if !ok {
		return nil, 0, false
	}
	cards = make([]CardPick, size)
	for i := 0; i < size; i++ {
		name := pickFrom(cs.cur.ctx.Seed, cs.cur.ante, "celestial-card", packIndex*8+i, Planets)
		cards[i] = CardPick{Name: name, Category: models.CategoryPlanet}
	}
	return cards, start, true
}

type SpectralStream struct{ cur *consumablePackCursor }

func (c *SingleContext) SpectralPackStream(ante int) *SpectralStream {
	return &SpectralStream{cur: c.newConsumableCursor(ante, models.PackTypeSpectral)}
}

func (ss *SpectralStream) NextContents() (cards []CardPick, slotStart int, ok bool) {
	packIndex, start, size, ok := ss.cur.advance()
	if !ok {
		return nil, 0, false
	}
	soulStream := newLaneStream(ss.cur.ctx.Seed, ss.cur.ante, "spectral-soul")
	soulStream.calls = packIndex
	hasSoul := soulStream.chance(1, 5)
	cards = make([]CardPick, size)
	for i := 0; i < size; i++ {
		if hasSoul && i == size-1 {
			cards[i] = CardPick{Name: "TheSoul", IsSoul: true, Category: models.CategorySpectral}
			continue
		}
		name := pickFrom(ss.cur.ctx.Seed, ss.cur.ante, "spectral-card", packIndex*8+i, Spectrals)
		cards[i] = CardPick{Name: name, Category: models.CategorySpectral}
	}
	return cards, start, true
}

type StandardStream struct{ cur *consumablePackCursor }

func (c *SingleContext) StandardPackStream(ante int) *StandardStream {
	return &StandardStream{cur: c.newConsumableCursor(ante, models.PackTypeStandard)}
}

var suits = []models.Suit{models.SuitSpades, models.SuitHearts, models.SuitClubs, models.SuitDiamonds}
var ranks = []models.Rank{
	models.Rank2, models.Rank3, models.Rank4, models.Rank5, models.Rank6, models.Rank7,
	models.Rank8, models.Rank9, models.Rank10, models.RankJack, models.RankQueen, models.RankKing, models.RankAce,
}
var seals = []models.Seal{models.SealNone, models.SealNone, models.SealNone, models.SealGold, models.SealRed, models.SealBlue, models.SealPurple}
var enhancements = []models.Enhancement{
	models.EnhancementNone, models.EnhancementNone, models.EnhancementNone,
	models.EnhancementBonus, models.EnhancementMult, models.EnhancementWild,
	models.EnhancementGlass, models.EnhancementSteel, models.EnhancementStone,
	models.EnhancementGold, models.EnhancementLucky,
}

func (ps *StandardStream) NextContents() (cards []PlayingCard, slotStart int, ok bool) {
	packIndex, start, size, ok := ps.cur.advance()
	if !ok {
		return nil, 0, false
	}
	cards = make([]PlayingCard, size)
	for i := 0; i < size; i++ {
		base := packIndex*8 + i
		suitStream := newLaneStream(ps.cur.ctx.Seed, ps.cur.ante, "std-suit")
		suitStream.calls = base
		rankStream := newLaneStream(ps.cur.ctx.Seed, ps.cur.ante, "std-rank")
		rankStream.calls = base
		sealStream := newLaneStream(ps.cur.ctx.Seed, ps.cur.ante, "std-seal")
		sealStream.calls = base
		enhStream := newLaneStream(ps.cur.ctx.Seed, ps.cur.ante, "std-enh")
		enhStream.calls = base
		editionStream := newLaneStream(ps.cur.ctx.Seed, ps.cur.ante, "std-edition")
		editionStream.calls = base
		cards[i] = PlayingCard{
			Suit:        suits[suitStream.pick(len(suits))],
			Rank:        ranks[rankStream.pick(len(ranks))],
			Seal:        seals[sealStream.pick(len(seals))],
			Enhancement: enhancements[enhStream.pick(len(enhancements))],
			Edition:     rollEdition(editionStream),
		}
	}
	return cards, start, true
}

type BuffoonStream struct{ cur *consumablePackCursor }

func (c *SingleContext) BuffoonPackStream(ante int) *BuffoonStream {
	return &BuffoonStream{cur: c.newConsumableCursor(ante, models.PackTypeBuffoon)}
}

// NextContents returns the jokers occupying the next Buffoon pack —
// packSlots scope Buffoon-pack contents the same way shopSlots scope
// the shop.
func (bs *BuffoonStream) NextContents() (jokers []JokerPick, slotStart int, ok bool) {
	packIndex, start, size, ok := bs.cur.advance()
	if !ok {
		return nil, 0, false
	}
	jokers = make([]JokerPick, size)
	for i := 0; i < size; i++ {
		name, rarity := pickJoker(bs.cur.ctx.Seed, bs.cur.ante, "buffoon-joker", packIndex*8+i)
		edStream := newLaneStream(bs.cur.ctx.Seed, bs.cur.ante, "buffoon-joker-edition")
		edStream.calls = packIndex*8 + i
		jokers[i] = JokerPick{Name: name, Rarity: rarity, Edition: rollEdition(edStream)}
	}
	return jokers, start, true
}

// --- Tags ---------------------------------------------------------------

type TagStream struct {
	ctx  *SingleContext
	ante int
}

func (c *SingleContext) TagStream(ante int) *TagStream { return &TagStream{ctx: c, ante: ante} }

func (t *TagStream) Next() (small, big string) {
	smallStream := newLaneStream(t.ctx.Seed, t.ante, "tag-small")
	bigStream := newLaneStream(t.ctx.Seed, t.ante, "tag-big")
	return Tags[smallStream.pick(len(Tags))], Tags[bigStream.pick(len(Tags))]
}

// --- Vouchers & run state ------------------------------------------------

// RunState is the single-lane mutable run state: constructed on demand
// inside the per-lane fallback and discarded at its end. It tracks which
// voucher upgrades have been triggered so far.
type RunState struct {
	activated map[string]string // base voucher name -> currently active (possibly upgraded) name
}

func NewRunState() *RunState { return &RunState{activated: make(map[string]string)} }

// ActivateVoucher records that the named voucher fired at some ante; from
// the next ante on, every draw of that base voucher yields its upgrade per
// VoucherUpgrades.
func (rs *RunState) ActivateVoucher(name string) {
	if upgraded, ok := VoucherUpgrades[name]; ok {
		rs.activated[name] = upgraded
	}
}

// AnteFirstVoucher returns the voucher offered at the start of ante,
// honoring any upgrade activated at a prior ante.
func (c *SingleContext) AnteFirstVoucher(ante int, rs *RunState) string {
	s := newLaneStream(c.Seed, ante, "voucher")
	base := Vouchers[s.pick(len(Vouchers))]
	if rs != nil {
		if upgraded, ok := rs.activated[base]; ok {
			return upgraded
		}
	}
	return base
}

// --- Boss -----------------------------------------------------------

func (c *SingleContext) BossBlind(ante int) string {
	s := newLaneStream(c.Seed, ante, "boss")
	return Bosses[s.pick(len(Bosses))]
}

// --- shared helpers -------------------------------------------------

func pickFrom(seed string, ante int, tag string, idx int, catalog []string) string {
	s := newLaneStream(seed, ante, tag)
	s.calls = idx
	return catalog[s.pick(len(catalog))]
}

func pickFromIdx(seed string, ante int, tag string, idx int, catalog []string) (string, int) {
	s := newLaneStream(seed, ante, tag)
	s.calls = idx
	i := s.pick(len(catalog))
	return catalog[i], i
}

func pickJoker(seed string, ante int, tag string, idx int) (string, Rarity) {
	rarityStream := newLaneStream(seed, ante, tag+"-rarity")
	rarityStream.calls = idx
	var rarity Rarity
	switch roll := rarityStream.pick(1000); {
	case roll < 700:
		rarity = RarityCommon
	case roll < 920:
		rarity = RarityUncommon
	case roll < 995:
		rarity = RarityRare
	default:
		rarity = RarityLegendary
	}
	list := Jokers[rarity]
	nameStream := newLaneStream(seed, ante, tag+"-name")
	nameStream.calls = idx
	return list[nameStream.pick(len(list))], rarity
}

func rollEdition(s *laneStream) models.Edition {
	switch roll := s.pick(1000); {
	case roll < 960:
		return models.EditionNone
	case roll < 980:
		return models.EditionFoil
	case roll < 992:
		return models.EditionHolographic
	case roll < 999:
		return models.EditionPolychrome
	default:
		return models.EditionNegative
	}
}

func rollStickers(s *laneStream) models.Sticker {
	var out models.Sticker
	if s.chance(1, 20) {
		out |= models.StickerEternal
	}
	if s.chance(1, 25) {
		out |= models.StickerPerishable
	}
	if s.chance(1, 25) {
		out |= models.StickerRental
	}
	return out
}
