package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/recruiter/internal/predicate"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Skipped describes a rule entry that could not be decoded.
type Skipped struct {
	Index int
	Name  string
	Err   error
}

func (s Skipped) String() string {
	if s.Name != "" {
		return fmt.Sprintf("rule %d (%s): %v", s.Index, s.Name, s.Err)
	}
	return fmt.Sprintf("rule %d: %v", s.Index, s.Err)
}

type ruleDoc struct {
	Name         string `json:"name"`
	Predicate    any    `json:"predicate"`
	FailHeadline string `json:"failHeadline"`
	Chip         string `json:"chip"`
	Action       string `json:"action"`
}

// Parse decodes a rule set document. Malformed rules are dropped and reported
// in the skipped list; only a document that is not a list of rules at all is
// an error.
func Parse(data []byte, format Format) ([]Rule, []Skipped, error) {
	var tree any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &tree)
	default:
		err = json.Unmarshal(data, &tree)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parsing rule set: %w", err)
	}

	items, ok := tree.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("rule set must be a list, got %T", tree)
	}

	rules := make([]Rule, 0, len(items))
	var skipped []Skipped
	for i, item := range items {
		rule, err := decodeRule(item)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Name: rule.Name, Err: err})
			continue
		}
		rules = append(rules, rule)
	}

	return rules, skipped, nil
}

// LoadFile reads and parses a rule set file.
func LoadFile(path string) ([]Rule, []Skipped, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return Parse(data, FormatForPath(path))
}

// Marshal renders rules as a configuration document. Rules holding a nil
// predicate are rejected since Parse would not read them back.
func Marshal(rules []Rule, format Format) ([]byte, error) {
	if rules == nil {
		rules = []Rule{}
	}

	for i, rule := range rules {
		if err := predicate.Validate(rule.Predicate); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rule.Name, err)
		}
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, err
	}
	if format != FormatYAML {
		return data, nil
	}

	// go through a generic tree so the type discriminators survive
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

// UnmarshalJSON decodes a single rule, rejecting it when malformed.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return err
	}
	rule, err := decodeRule(tree)
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// decodeRule returns the partially decoded rule alongside an error so that
// callers can name the rule they skip.
func decodeRule(tree any) (Rule, error) {
	var doc ruleDoc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &doc,
		TagName: "json",
	})
	if err != nil {
		return Rule{}, err
	}
	if err := decoder.Decode(tree); err != nil {
		return Rule{}, fmt.Errorf("decoding rule: %w", err)
	}

	rule := Rule{
		Name:   strings.TrimSpace(doc.Name),
		Chip:   strings.TrimSpace(doc.Chip),
		Action: strings.TrimSpace(doc.Action),
	}
	if rule.Name == "" {
		return rule, errors.New("name is required")
	}
	// a rule without a chip still gates, it is tagged with its name
	if rule.Chip == "" {
		rule.Chip = rule.Name
	}

	rule.FailHeadline, err = ParseHeadline(doc.FailHeadline)
	if err != nil {
		return rule, err
	}

	rule.Predicate, err = predicate.Decode(doc.Predicate)
	if err != nil {
		return rule, err
	}

	return rule, nil
}
