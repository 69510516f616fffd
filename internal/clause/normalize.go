// Package clause normalizes the wire-format RawQuery/RawClause tree into the
// canonical, immutable models.Clause tree the filter nodes and scoring
// driver consume. Normalization is the one place ante defaulting,
// slot-mask construction, wildcard parsing, and sources merging happen;
// everything downstream assumes a Clause is already valid.
package clause

import (
	"fmt"

	"github.com/rawblock/seedscan/pkg/models"
)

// Error is one fatal normalization failure, tagged with the clause path
// that produced it (e.g. "must[2].clauses[0]") so a query author can find
// the offending clause in their document.
type Error struct {
	Path string
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Path, e.Msg) }

// errs accumulates every Error encountered across an entire query so the
// caller never has to re-submit a document one mistake at a time.
type errs struct {
	list []error
}

func (e *errs) add(path, msg string) {
	e.list = append(e.list, &Error{Path: path, Msg: msg})
}

// NormalizeQuery turns a RawQuery into a models.Query, collecting every
// fatal error rather than stopping at the first.
func NormalizeQuery(raw models.RawQuery) (models.Query, []error) {
	var e errs
	q := models.Query{
		Name:        raw.Name,
		Author:      raw.Author,
		Description: raw.Description,
	}

	if deck, ok := models.ParseDeck(raw.Deck); ok {
		q.Deck = deck
	} else if raw.Deck != "" {
		e.add("deck", "unrecognized deck "+raw.Deck)
	}
	if stake, ok := models.ParseStake(raw.Stake); ok {
		q.Stake = stake
	} else if raw.Stake != "" {
		e.add("stake", "unrecognized stake "+raw.Stake)
	}

	q.Must = normalizeList(raw.Must, "must", &e)
	q.Should = normalizeList(raw.Should, "should", &e)
	q.MustNot = normalizeList(raw.MustNot, "mustNot", &e)

	q.MaxVoucherAnte = maxVoucherAnte(q.Must)

	return q, e.list
}

func normalizeList(raw []models.RawClause, path string, e *errs) []models.Clause {
	out := make([]models.Clause, 0, len(raw))
	for i, rc := range raw {
		c, ok := normalizeClause(rc, fmt.Sprintf("%s[%d]", path, i), e)
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func normalizeClause(rc models.RawClause, path string, e *errs) (models.Clause, bool) {
	cat, ok := models.ParseCategory(rc.Type)
	if !ok {
		e.add(path, "unrecognized clause type "+rc.Type)
		return models.Clause{}, false
	}

	switch cat {
	case models.CategoryAnd, models.CategoryOr, models.CategoryNot:
		return normalizeComposite(rc, cat, path, e)
	}

	c := models.Clause{Category: cat, Label: rc.Label, Score: rc.Score, Min: rc.Min}

	antes, ok := resolveAntes(rc.Antes, path, e)
	if !ok {
		return models.Clause{}, false
	}
	// Ante 0 is accepted by the validator (range 0..39) but has no
	// associated stream, so it is dropped here as an empty domain rather
	// than carried through as a clause that can never match anything.
	c.Antes = make([]int, 0, len(antes))
	for _, a := range antes {
		if a == 0 {
			continue
		}
		c.Antes = append(c.Antes, a)
		if a >= 0 && a <= models.MaxAnte {
			c.AntesMask[a] = true
		}
	}

	if cat == models.CategorySoulJoker && len(resolveShopSlots(rc)) > 0 {
		e.add(path, "SoulJoker clauses cannot scope shopSlots; soul jokers never appear in the shop")
		return models.Clause{}, false
	}

	if cat == models.CategoryJoker || cat == models.CategorySoulJoker {
		wc, recognized, err := models.ParseWildcard(rc.Value, cat == models.CategorySoulJoker)
		if err != nil {
			e.add(path, err.Error())
			return models.Clause{}, false
		}
		if recognized {
			c.Wildcard = wc
		} else {
			c.Value = rc.Value
		}
	} else {
		c.Value = rc.Value
	}

	if rc.Edition != "" {
		ed, ok := models.ParseEdition(rc.Edition)
		if !ok {
			e.add(path, "unrecognized edition "+rc.Edition)
			return models.Clause{}, false
		}
		c.Edition = ed
		if !editionAllowed(cat) {
			e.add(path, fmt.Sprintf("edition is not applicable to %s clauses", cat))
			return models.Clause{}, false
		}
	}

	for _, s := range rc.Stickers {
		st, ok := models.ParseSticker(s)
		if !ok {
			e.add(path, "unrecognized sticker "+s)
			return models.Clause{}, false
		}
		c.Stickers |= st
	}

	if cat == models.CategoryPlayingCard {
		if rc.Suit != "" {
			if v, ok := models.ParseSuit(rc.Suit); ok {
				c.Suit = v
			} else {
				e.add(path, "unrecognized suit "+rc.Suit)
				return models.Clause{}, false
			}
		}
		if rc.Rank != "" {
			if v, ok := models.ParseRank(rc.Rank); ok {
				c.Rank = v
			} else {
				e.add(path, "unrecognized rank "+rc.Rank)
				return models.Clause{}, false
			}
		}
		if rc.Seal != "" {
			if v, ok := models.ParseSeal(rc.Seal); ok {
				c.Seal = v
			} else {
				e.add(path, "unrecognized seal "+rc.Seal)
				return models.Clause{}, false
			}
		}
		if rc.Enhancement != "" {
			if v, ok := models.ParseEnhancement(rc.Enhancement); ok {
				c.Enhancement = v
			} else {
				e.add(path, "unrecognized enhancement "+rc.Enhancement)
				return models.Clause{}, false
			}
		}
	}

	sources := mergeSources(rc)
	c.ShopSlotMask = sources.ShopSlotMask
	c.PackSlotMask = sources.PackSlotMask
	c.RequireMega = sources.RequireMega

	if cat == models.CategoryTag {
		c.TagScope = resolveTagScope(rc.TagType)
	} else if cat == models.CategorySmallBlindTag {
		c.TagScope = models.TagScopeSmall
	} else if cat == models.CategoryBigBlindTag {
		c.TagScope = models.TagScopeBig
	}

	if !slotsWithinBounds(sources.ShopSlotMask) || !slotsWithinBounds(sources.PackSlotMask) {
		e.add(path, "slot index out of the supported 0..15 range")
		return models.Clause{}, false
	}

	return c, true
}

func normalizeComposite(rc models.RawClause, cat models.Category, path string, e *errs) (models.Clause, bool) {
	c := models.Clause{Category: cat, Label: rc.Label, Score: rc.Score}
	if rc.Antes != nil {
		antes, ok := resolveAntes(rc.Antes, path, e)
		if !ok {
			return models.Clause{}, false
		}
		c.GroupAntes = antes
	}
	if cat == models.CategoryNot && len(rc.Clauses) != 1 {
		e.add(path, "Not requires exactly one nested clause")
		return models.Clause{}, false
	}
	if cat != models.CategoryNot && len(rc.Clauses) == 0 {
		e.add(path, fmt.Sprintf("%s requires at least one nested clause", cat))
		return models.Clause{}, false
	}
	for i, nrc := range rc.Clauses {
		nc, ok := normalizeClause(nrc, fmt.Sprintf("%s.clauses[%d]", path, i), e)
		if ok {
			c.Nested = append(c.Nested, nc)
		}
	}
	return c, true
}

// resolveAntes applies ante defaulting: a nil `antes` field means "use
// DefaultAntes"; an explicit empty list is invalid.
func resolveAntes(antes *[]int, path string, e *errs) ([]int, bool) {
	if antes == nil {
		return append([]int(nil), models.DefaultAntes...), true
	}
	if len(*antes) == 0 {
		e.add(path, "antes must not be an explicit empty list")
		return nil, false
	}
	for _, a := range *antes {
		if a < 0 || a > models.MaxAnte {
			e.add(path, fmt.Sprintf("ante %d is out of range 0..%d", a, models.MaxAnte))
			return nil, false
		}
	}
	return append([]int(nil), *antes...), true
}

func resolveShopSlots(rc models.RawClause) []int {
	if rc.Sources != nil && len(rc.Sources.ShopSlots) > 0 {
		return rc.Sources.ShopSlots
	}
	return rc.ShopSlots
}

// mergeSources merges the flat shopSlots/packSlots/tags/requireMega fields
// with the nested `sources` object: a flat field always wins, and a nested
// field is used only where its flat counterpart is absent.
func mergeSources(rc models.RawClause) models.Sources {
	var out models.Sources

	shopSlots := rc.ShopSlots
	packSlots := rc.PackSlots
	tags := rc.Tags
	var requireMega *bool = rc.RequireMega

	if rc.Sources != nil {
		if len(shopSlots) == 0 {
			shopSlots = rc.Sources.ShopSlots
		}
		if len(packSlots) == 0 {
			packSlots = rc.Sources.PackSlots
		}
		if len(tags) == 0 {
			tags = rc.Sources.Tags
		}
		if requireMega == nil {
			requireMega = rc.Sources.RequireMega
		}
	}

	for _, s := range shopSlots {
		if s >= 0 && s < 64 {
			out.ShopSlotMask |= 1 << uint(s)
		}
	}
	for _, s := range packSlots {
		if s >= 0 && s < 64 {
			out.PackSlotMask |= 1 << uint(s)
		}
	}
	out.Tags = tags
	out.RequireMega = requireMega != nil && *requireMega
	return out
}

func slotsWithinBounds(mask uint64) bool {
	return mask>>uint(models.MaxSlotIndex) == 0
}

// resolveTagScope decides a generic Tag clause's scope: an explicit
// tagType wins; otherwise the clause matches either blind's tag (the
// "Either" default is recorded as an open-question resolution in
// DESIGN.md).
func resolveTagScope(tagType string) models.TagScope {
	switch tagType {
	case "small", "Small", "smallblind", "SmallBlind":
		return models.TagScopeSmall
	case "big", "Big", "bigblind", "BigBlind":
		return models.TagScopeBig
	default:
		return models.TagScopeEither
	}
}

func editionAllowed(cat models.Category) bool {
	switch cat {
	case models.CategoryJoker, models.CategorySoulJoker, models.CategoryPlayingCard, models.CategoryTarot, models.CategoryPlanet, models.CategorySpectral:
		return true
	default:
		return false
	}
}

func maxVoucherAnte(must []models.Clause) int {
	max := 0
	for _, c := range must {
		if c.Category == models.CategoryVoucher {
			_, hi := c.AnteRange()
			if hi > max {
				max = hi
			}
		}
		if len(c.Nested) > 0 {
			if n := maxVoucherAnte(c.Nested); n > max {
				max = n
			}
		}
	}
	return max
}
