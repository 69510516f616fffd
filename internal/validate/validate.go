// Package validate runs the semantic checks needed beyond normalization:
// warnings and soft errors that depend on the whole query (stake vs.
// sticker plausibility, slot scoping on the wrong category) rather than
// on any single clause in isolation. Every issue is collected before a
// search begins rather than stopping at the first one found.
package validate

import (
	"fmt"

	"github.com/rawblock/seedscan/pkg/models"
)

// Severity distinguishes a hard error (the query must be rejected) from a
// warning (the query runs, but the author is told something is probably a
// mistake).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

type Issue struct {
	Path     string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	level := "warning"
	if i.Severity == SeverityError {
		level = "error"
	}
	return fmt.Sprintf("[%s] %s: %s", level, i.Path, i.Message)
}

// Query runs every semantic check against a normalized query and returns
// all issues found, errors and warnings together.
func Query(q models.Query) []Issue {
	var issues []Issue
	walk(q.Must, "must", true, q, &issues)
	walk(q.Should, "should", false, q, &issues)
	walk(q.MustNot, "mustNot", false, q, &issues)

	hasShouldScore := false
	for _, c := range q.Should {
		if c.Score != 0 {
			hasShouldScore = true
		}
	}
	if len(q.Should) > 0 && !hasShouldScore {
		issues = append(issues, Issue{
			Path: "should", Severity: SeverityWarning,
			Message: "every should clause has score 0; auto-cutoff will never raise above the floor",
		})
	}
	return issues
}

// HasErrors reports whether issues contains any SeverityError entry.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func walk(clauses []models.Clause, path string, inMust bool, q models.Query, issues *[]Issue) {
	for i, c := range clauses {
		p := fmt.Sprintf("%s[%d]", path, i)
		checkClause(c, p, inMust, q, issues)
		if len(c.Nested) > 0 {
			walk(c.Nested, p+".clauses", inMust, q, issues)
		}
	}
}

func checkClause(c models.Clause, path string, inMust bool, q models.Query, issues *[]Issue) {
	if inMust && c.Category == models.CategoryJoker && c.ShopSlotMask == 0 && c.PackSlotMask == 0 {
		*issues = append(*issues, Issue{
			Path: path, Severity: SeverityError,
			Message: "must Joker clauses require at least one of shopSlots/packSlots; an unscoped clause would match every shop slot",
		})
	}

	switch c.Category {
	case models.CategoryTag, models.CategorySmallBlindTag, models.CategoryBigBlindTag:
		if c.ShopSlotMask != 0 || c.PackSlotMask != 0 {
			*issues = append(*issues, Issue{
				Path: path, Severity: SeverityWarning,
				Message: "shop/pack slot scoping has no effect on Tag clauses",
			})
		}
	case models.CategoryVoucher:
		if c.ShopSlotMask != 0 || c.PackSlotMask != 0 {
			*issues = append(*issues, Issue{
				Path: path, Severity: SeverityWarning,
				Message: "shop/pack slot scoping has no effect on Voucher clauses; vouchers are ante-scoped only",
			})
		}
	case models.CategoryBoss:
		if c.ShopSlotMask != 0 || c.PackSlotMask != 0 {
			*issues = append(*issues, Issue{
				Path: path, Severity: SeverityWarning,
				Message: "shop/pack slot scoping has no effect on Boss clauses",
			})
		}
	}

	if c.Stickers != 0 && q.Stake < models.StakeBlack {
		*issues = append(*issues, Issue{
			Path: path, Severity: SeverityWarning,
			Message: "sticker-bearing jokers require at least Black Stake; this query's stake will never satisfy this clause",
		})
	}

	if c.RequireMega && c.PackSlotMask == 0 {
		*issues = append(*issues, Issue{
			Path: path, Severity: SeverityWarning,
			Message: "requireMega without any packSlots scopes nothing",
		})
	}
}
