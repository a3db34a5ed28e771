package predicate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

var (
	ErrUnknownType = errors.New("unknown predicate type")
	ErrUnknownOp   = errors.New("unknown comparison operator")
	ErrMissing     = errors.New("predicate is missing")
)

// node is the union of every variant's fields in the configuration document.
type node struct {
	Type Kind `json:"type"`

	Predicates []any `json:"predicates"`
	Predicate  any   `json:"predicate"`

	Field       string   `json:"field"`
	Op          Op       `json:"op"`
	Value       *float64 `json:"value"`
	Equals      *bool    `json:"equals"`
	Keywords    []string `json:"keywords"`
	ShouldExist *bool    `json:"shouldExist"`
}

// Unmarshal parses a JSON predicate document.
func Unmarshal(data []byte) (Predicate, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return Decode(tree)
}

// Decode builds a predicate from a generic tree as produced by decoding JSON
// or YAML into interface values.
func Decode(tree any) (Predicate, error) {
	if tree == nil {
		return nil, ErrMissing
	}

	var n node
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &n,
		TagName: "json",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(tree); err != nil {
		return nil, fmt.Errorf("decoding predicate: %w", err)
	}

	switch n.Type {
	case KindAnd:
		children, err := decodeList(n.Predicates)
		if err != nil {
			return nil, fmt.Errorf("and: %w", err)
		}
		return And{Predicates: children}, nil
	case KindOr:
		children, err := decodeList(n.Predicates)
		if err != nil {
			return nil, fmt.Errorf("or: %w", err)
		}
		return Or{Predicates: children}, nil
	case KindNot:
		child, err := Decode(n.Predicate)
		if err != nil {
			return nil, fmt.Errorf("not: %w", err)
		}
		return Not{Predicate: child}, nil
	case KindNumberCompare:
		if err := requireField(n); err != nil {
			return nil, err
		}
		if !n.Op.valid() {
			return nil, fmt.Errorf("%s: %w %q", n.Type, ErrUnknownOp, n.Op)
		}
		if n.Value == nil {
			return nil, fmt.Errorf("%s: value is required", n.Type)
		}
		return NumberCompare{Field: n.Field, Op: n.Op, Value: *n.Value}, nil
	case KindBoolEquals:
		if err := requireField(n); err != nil {
			return nil, err
		}
		if n.Equals == nil {
			return nil, fmt.Errorf("%s: equals is required", n.Type)
		}
		return BoolEquals{Field: n.Field, Equals: *n.Equals}, nil
	case KindStringContainsAny:
		if err := requireField(n); err != nil {
			return nil, err
		}
		keywords := make([]string, 0, len(n.Keywords))
		keywords = append(keywords, n.Keywords...)
		return StringContainsAny{Field: n.Field, Keywords: keywords}, nil
	case KindFieldExists:
		if err := requireField(n); err != nil {
			return nil, err
		}
		shouldExist := true
		if n.ShouldExist != nil {
			shouldExist = *n.ShouldExist
		}
		return FieldExists{Field: n.Field, ShouldExist: shouldExist}, nil
	case "":
		return nil, errors.New("predicate type is required")
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, n.Type)
	}
}

// Validate reports a nil predicate anywhere in the tree. Such trees evaluate
// (nil passes) but cannot be written to a document that decodes again.
func Validate(p Predicate) error {
	switch v := p.(type) {
	case nil:
		return ErrMissing
	case And:
		return validateList(KindAnd, v.Predicates)
	case Or:
		return validateList(KindOr, v.Predicates)
	case Not:
		if err := Validate(v.Predicate); err != nil {
			return fmt.Errorf("not: %w", err)
		}
	}
	return nil
}

func validateList(kind Kind, ps []Predicate) error {
	for i, child := range ps {
		if err := Validate(child); err != nil {
			return fmt.Errorf("%s: predicates[%d]: %w", kind, i, err)
		}
	}
	return nil
}

func decodeList(items []any) ([]Predicate, error) {
	children := make([]Predicate, 0, len(items))
	for i, item := range items {
		child, err := Decode(item)
		if err != nil {
			return nil, fmt.Errorf("predicates[%d]: %w", i, err)
		}
		children = append(children, child)
	}
	return children, nil
}

func requireField(n node) error {
	if n.Field == "" {
		return fmt.Errorf("%s: field is required", n.Type)
	}
	return nil
}

func (p And) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       Kind        `json:"type"`
		Predicates []Predicate `json:"predicates"`
	}{KindAnd, nonNil(p.Predicates)})
}

func (p Or) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       Kind        `json:"type"`
		Predicates []Predicate `json:"predicates"`
	}{KindOr, nonNil(p.Predicates)})
}

func (p Not) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      Kind      `json:"type"`
		Predicate Predicate `json:"predicate"`
	}{KindNot, p.Predicate})
}

func (p NumberCompare) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  Kind    `json:"type"`
		Field string  `json:"field"`
		Op    Op      `json:"op"`
		Value float64 `json:"value"`
	}{KindNumberCompare, p.Field, p.Op, p.Value})
}

func (p BoolEquals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Kind   `json:"type"`
		Field  string `json:"field"`
		Equals bool   `json:"equals"`
	}{KindBoolEquals, p.Field, p.Equals})
}

func (p StringContainsAny) MarshalJSON() ([]byte, error) {
	keywords := p.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return json.Marshal(struct {
		Type     Kind     `json:"type"`
		Field    string   `json:"field"`
		Keywords []string `json:"keywords"`
	}{KindStringContainsAny, p.Field, keywords})
}

func (p FieldExists) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        Kind   `json:"type"`
		Field       string `json:"field"`
		ShouldExist bool   `json:"shouldExist"`
	}{KindFieldExists, p.Field, p.ShouldExist})
}

func nonNil(ps []Predicate) []Predicate {
	if ps == nil {
		return []Predicate{}
	}
	return ps
}
