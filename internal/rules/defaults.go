package rules

import (
	_ "embed"
	"fmt"
	"sync"
)

//go:embed default_rules.json
var defaultRulesDoc []byte

var defaultRules = sync.OnceValue(func() []Rule {
	rules, skipped, err := Parse(defaultRulesDoc, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("built-in rule set: %v", err))
	}
	if len(skipped) > 0 {
		panic(fmt.Sprintf("built-in rule set: %s", skipped[0]))
	}
	return rules
})

// Defaults returns a copy of the built-in starter rule set. It is ordered by
// ascending severity so the most severe failure decides the headline.
func Defaults() []Rule {
	rules := defaultRules()
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// DefaultDocument returns the built-in rule set document.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultRulesDoc))
	copy(out, defaultRulesDoc)
	return out
}
