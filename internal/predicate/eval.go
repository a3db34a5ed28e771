package predicate

import (
	"strings"

	"github.com/spigell/recruiter/internal/candidate"
)

var empty = &candidate.Candidate{}

// Evaluate reports whether c satisfies p. A nil predicate is satisfied by
// everyone and a nil candidate is treated as one with nothing recorded.
func Evaluate(p Predicate, c *candidate.Candidate) bool {
	if p == nil {
		return true
	}
	return p.Evaluate(c)
}

func (p And) Evaluate(c *candidate.Candidate) bool {
	for _, child := range p.Predicates {
		if !Evaluate(child, c) {
			return false
		}
	}
	return true
}

func (p Or) Evaluate(c *candidate.Candidate) bool {
	for _, child := range p.Predicates {
		if Evaluate(child, c) {
			return true
		}
	}
	return false
}

func (p Not) Evaluate(c *candidate.Candidate) bool {
	return !Evaluate(p.Predicate, c)
}

func (p NumberCompare) Evaluate(c *candidate.Candidate) bool {
	v, ok := Lookup(orEmpty(c), p.Field)
	if !ok {
		return false
	}
	n, ok := v.(float64)
	if !ok {
		return false
	}

	switch p.Op {
	case OpLT:
		return n < p.Value
	case OpLTE:
		return n <= p.Value
	case OpGT:
		return n > p.Value
	case OpGTE:
		return n >= p.Value
	case OpEQ:
		return n == p.Value
	case OpNEQ:
		return n != p.Value
	default:
		return false
	}
}

func (p BoolEquals) Evaluate(c *candidate.Candidate) bool {
	v, ok := Lookup(orEmpty(c), p.Field)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b == p.Equals
}

func (p StringContainsAny) Evaluate(c *candidate.Candidate) bool {
	var text string
	if v, ok := Lookup(orEmpty(c), p.Field); ok {
		text, _ = v.(string)
	}
	text = strings.ToLower(text)

	for _, keyword := range p.Keywords {
		// an empty keyword would match every value
		if keyword == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

func (p FieldExists) Evaluate(c *candidate.Candidate) bool {
	return present(orEmpty(c), p.Field) == p.ShouldExist
}

func present(c *candidate.Candidate, field string) bool {
	v, ok := Lookup(c, field)
	if !ok {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func orEmpty(c *candidate.Candidate) *candidate.Candidate {
	if c == nil {
		return empty
	}
	return c
}
