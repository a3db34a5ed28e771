// Package predicate implements the boolean expression language eligibility
// rules are written in.
//
// A Predicate is a closed sum type: And, Or, Not, NumberCompare, BoolEquals,
// StringContainsAny and FieldExists. Evaluation is total. Missing or
// mistyped candidate attributes never cause an error, they resolve to the
// defaults documented on each variant.
package predicate

import "github.com/spigell/recruiter/internal/candidate"

// Kind is the serialization discriminator of a predicate variant.
type Kind string

const (
	KindAnd               Kind = "and"
	KindOr                Kind = "or"
	KindNot               Kind = "not"
	KindNumberCompare     Kind = "numberCompare"
	KindBoolEquals        Kind = "boolEquals"
	KindStringContainsAny Kind = "stringContainsAny"
	KindFieldExists       Kind = "fieldExists"
)

// Op is a numeric comparison operator.
type Op string

const (
	OpLT  Op = "lt"
	OpLTE Op = "lte"
	OpGT  Op = "gt"
	OpGTE Op = "gte"
	OpEQ  Op = "eq"
	OpNEQ Op = "neq"
)

func (o Op) valid() bool {
	switch o {
	case OpLT, OpLTE, OpGT, OpGTE, OpEQ, OpNEQ:
		return true
	default:
		return false
	}
}

// Predicate is a node of a rule condition tree. The variant set is closed;
// only the types in this package implement it.
type Predicate interface {
	Kind() Kind
	// Evaluate reports whether c satisfies the predicate.
	Evaluate(c *candidate.Candidate) bool

	sealed()
}

// And is true when every child is true. An empty And is true.
type And struct {
	Predicates []Predicate `json:"predicates"`
}

// Or is true when at least one child is true. An empty Or is false.
type Or struct {
	Predicates []Predicate `json:"predicates"`
}

// Not inverts its child. Not of a nil child is false.
type Not struct {
	Predicate Predicate `json:"predicate"`
}

// NumberCompare compares a numeric field against Value. Absent or
// non-numeric fields never satisfy the comparison.
type NumberCompare struct {
	Field string  `json:"field"`
	Op    Op      `json:"op"`
	Value float64 `json:"value"`
}

// BoolEquals is false for absent or non-boolean fields.
type BoolEquals struct {
	Field  string `json:"field"`
	Equals bool   `json:"equals"`
}

// StringContainsAny matches case-insensitively when the field contains any of
// the keywords. Absent fields are treated as the empty string, so
// Not(StringContainsAny) holds for a candidate with nothing recorded.
type StringContainsAny struct {
	Field    string   `json:"field"`
	Keywords []string `json:"keywords"`
}

// FieldExists is true when the presence of the field equals ShouldExist.
// Strings count as present only when they are not blank.
type FieldExists struct {
	Field       string `json:"field"`
	ShouldExist bool   `json:"shouldExist"`
}

func (And) Kind() Kind               { return KindAnd }
func (Or) Kind() Kind                { return KindOr }
func (Not) Kind() Kind               { return KindNot }
func (NumberCompare) Kind() Kind     { return KindNumberCompare }
func (BoolEquals) Kind() Kind        { return KindBoolEquals }
func (StringContainsAny) Kind() Kind { return KindStringContainsAny }
func (FieldExists) Kind() Kind       { return KindFieldExists }

func (And) sealed()               {}
func (Or) sealed()                {}
func (Not) sealed()               {}
func (NumberCompare) sealed()     {}
func (BoolEquals) sealed()        {}
func (StringContainsAny) sealed() {}
func (FieldExists) sealed()       {}

// AllOf builds an And.
func AllOf(ps ...Predicate) And { return And{Predicates: ps} }

// AnyOf builds an Or.
func AnyOf(ps ...Predicate) Or { return Or{Predicates: ps} }

// Negate builds a Not.
func Negate(p Predicate) Not { return Not{Predicate: p} }
