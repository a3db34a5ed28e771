package predicate

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"
)

func TestRoundTripEveryVariant(t *testing.T) {
	t.Parallel()

	leaves := []Predicate{
		NumberCompare{Field: FieldAge, Op: OpGTE, Value: 17},
		NumberCompare{Field: FieldWeightInPounds, Op: OpNEQ, Value: 162.5},
		BoolEquals{Field: FieldPriorService, Equals: true},
		StringContainsAny{Field: FieldLegalIssues, Keywords: []string{"felony", "DUI"}},
		FieldExists{Field: FieldEducationLevel, ShouldExist: true},
		FieldExists{Field: FieldWaistInInches, ShouldExist: false},
	}

	cases := map[string]Predicate{
		"empty and": AllOf(),
		"empty or":  AnyOf(),
		"not":       Negate(leaves[0]),
		"three levels deep": AllOf(
			AnyOf(
				Negate(AllOf(leaves[0], leaves[1])),
				AllOf(leaves[2], Negate(leaves[3])),
			),
			Negate(AnyOf(leaves[4], AllOf(leaves[5]))),
		),
	}
	for i, leaf := range leaves {
		cases[fmt.Sprintf("%s %d", leaf.Kind(), i)] = leaf
	}

	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(p)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			decoded, err := Unmarshal(data)
			if err != nil {
				t.Fatalf("unmarshal %s: %v", data, err)
			}

			if diff := cmp.Diff(p, decoded, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalShape(t *testing.T) {
	data, err := json.Marshal(Negate(StringContainsAny{Field: FieldTattoosNotes, Keywords: []string{"neck"}}))
	if err != nil {
		t.Fatal(err)
	}

	want := `{"type":"not","predicate":{"type":"stringContainsAny","field":"tattoosNotes","keywords":["neck"]}}`
	if string(data) != want {
		t.Fatalf("unexpected document:\n got %s\nwant %s", data, want)
	}

	data, err = json.Marshal(And{})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"and","predicates":[]}` {
		t.Fatalf("empty and must serialize an empty list, got %s", data)
	}
}

func TestDecodeYAMLTree(t *testing.T) {
	doc := `
type: or
predicates:
  - type: numberCompare
    field: dependents
    op: lte
    value: 3
  - type: fieldExists
    field: dependents
    shouldExist: false
`
	var tree any
	if err := yaml.Unmarshal([]byte(doc), &tree); err != nil {
		t.Fatal(err)
	}

	p, err := Decode(tree)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := AnyOf(
		NumberCompare{Field: FieldDependents, Op: OpLTE, Value: 3},
		FieldExists{Field: FieldDependents, ShouldExist: false},
	)
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("unexpected predicate (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    string
		target error
	}{
		{name: "unknown type", doc: `{"type":"xor"}`, target: ErrUnknownType},
		{name: "unknown op", doc: `{"type":"numberCompare","field":"age","op":"approx","value":1}`, target: ErrUnknownOp},
		{name: "missing type", doc: `{"field":"age"}`},
		{name: "missing value", doc: `{"type":"numberCompare","field":"age","op":"gte"}`},
		{name: "missing equals", doc: `{"type":"boolEquals","field":"hasTattoos"}`},
		{name: "missing field", doc: `{"type":"fieldExists"}`},
		{name: "not without child", doc: `{"type":"not"}`},
		{name: "bad nested child", doc: `{"type":"and","predicates":[{"type":"or","predicates":[{"type":"nope"}]}]}`, target: ErrUnknownType},
		{name: "wrong shape", doc: `["and"]`},
		{name: "wrong value type", doc: `{"type":"numberCompare","field":"age","op":"gte","value":"seventeen"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unmarshal([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error for %s", tt.doc)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestDecodeFieldExistsDefaultsToShouldExist(t *testing.T) {
	p, err := Unmarshal([]byte(`{"type":"fieldExists","field":"educationLevel"}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(FieldExists{Field: FieldEducationLevel, ShouldExist: true}, p); diff != "" {
		t.Fatalf("unexpected predicate (-want +got):\n%s", diff)
	}
}

func TestDecodeKeepsUnknownFieldNames(t *testing.T) {
	p, err := Unmarshal([]byte(`{"type":"numberCompare","field":"retiredField","op":"gte","value":1}`))
	if err != nil {
		t.Fatalf("unknown field names must decode: %v", err)
	}
	if Evaluate(p, fullCandidate()) {
		t.Fatalf("unknown field must fail closed")
	}
}

func TestValidate(t *testing.T) {
	leaf := FieldExists{Field: FieldAge, ShouldExist: true}

	if err := Validate(AllOf(leaf, AnyOf(), Negate(leaf))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, p := range map[string]Predicate{
		"nil":        nil,
		"not of nil": Negate(nil),
		"nested":     AllOf(leaf, AnyOf(leaf, Negate(nil))),
	} {
		if err := Validate(p); !errors.Is(err, ErrMissing) {
			t.Fatalf("%s: expected ErrMissing, got %v", name, err)
		}
	}

	if _, err := Unmarshal([]byte(`{"type": "not", "predicate": null}`)); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected a null child to be reported missing, got %v", err)
	}
}
