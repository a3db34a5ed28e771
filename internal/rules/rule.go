// Package rules folds an ordered list of eligibility rules into one verdict.
//
// Ordering is part of the contract: every failing rule overwrites the
// headline, so the verdict reflects the LAST failing rule in list order, not
// the most severe one. Callers that want the most severe failure to win must
// order the rule set with SortBySeverity before evaluating it.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spigell/recruiter/internal/predicate"
)

var ErrUnknownHeadline = errors.New("unknown headline")

// Headline is the eligibility verdict shown for a candidate.
type Headline string

const (
	Eligible       Headline = "eligible"
	LikelyEligible Headline = "likelyEligible"
	NeedsReview    Headline = "needsReview"
	NeedsWaiver    Headline = "needsWaiver"
	NotEligible    Headline = "notEligible"
)

var severities = map[Headline]int{
	Eligible:       0,
	LikelyEligible: 1,
	NeedsReview:    2,
	NeedsWaiver:    3,
	NotEligible:    4,
}

func ParseHeadline(s string) (Headline, error) {
	h := Headline(s)
	if _, ok := severities[h]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownHeadline, s)
	}
	return h, nil
}

// Severity ranks headlines from Eligible (0) upwards.
func (h Headline) Severity() int {
	return severities[h]
}

// Rule passes when its predicate holds for the candidate.
type Rule struct {
	Name         string              `json:"name"`
	Predicate    predicate.Predicate `json:"predicate"`
	FailHeadline Headline            `json:"failHeadline"`
	Chip         string              `json:"chip"`
	Action       string              `json:"action,omitempty"`
}

// SortBySeverity returns a copy of rules ordered by ascending fail severity,
// keeping the relative order of equally severe rules. Evaluated in that order
// the most severe failure is the last one and therefore wins the headline.
func SortBySeverity(rules []Rule) []Rule {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FailHeadline.Severity() < sorted[j].FailHeadline.Severity()
	})
	return sorted
}
