package rules

import (
	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/predicate"
)

// Outcome is the accumulated result of a rule set. Chips and Actions keep
// rule order and are not deduplicated.
type Outcome struct {
	Headline Headline `json:"headline"`
	Chips    []string `json:"chips"`
	Actions  []string `json:"actions"`
}

// Result describes one rule of an evaluation.
type Result struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Headline Headline `json:"headline,omitempty"`
	Chip     string   `json:"chip,omitempty"`
	Action   string   `json:"action,omitempty"`
}

// Evaluate applies rules in order. A failing rule replaces the headline with
// its FailHeadline and appends its chip and action.
func Evaluate(rules []Rule, c *candidate.Candidate) Outcome {
	outcome := Outcome{
		Headline: Eligible,
		Chips:    []string{},
		Actions:  []string{},
	}

	for _, rule := range rules {
		if predicate.Evaluate(rule.Predicate, c) {
			continue
		}

		outcome.Headline = rule.FailHeadline
		outcome.Chips = append(outcome.Chips, rule.Chip)
		if rule.Action != "" {
			outcome.Actions = append(outcome.Actions, rule.Action)
		}
	}

	return outcome
}

// Explain reports every rule's result in evaluation order.
func Explain(rules []Rule, c *candidate.Candidate) []Result {
	results := make([]Result, 0, len(rules))
	for _, rule := range rules {
		result := Result{
			Name:   rule.Name,
			Passed: predicate.Evaluate(rule.Predicate, c),
		}
		if !result.Passed {
			result.Headline = rule.FailHeadline
			result.Chip = rule.Chip
			result.Action = rule.Action
		}
		results = append(results, result)
	}
	return results
}

// Failed returns the names of failing rules in the given results.
func Failed(results []Result) []string {
	var names []string
	for _, r := range results {
		if !r.Passed {
			names = append(names, r.Name)
		}
	}
	return names
}
