package predicate

import (
	"sort"

	"github.com/spigell/recruiter/internal/bodycomp"
	"github.com/spigell/recruiter/internal/candidate"
)

// Field names understood by the accessor table.
const (
	FieldAge            = "age"
	FieldPriorService   = "priorService"
	FieldLegalIssues    = "legalIssues"
	FieldPhysicalHealth = "physicalHealth"
	FieldEducationLevel = "educationLevel"
	FieldHasTattoos     = "hasTattoos"
	FieldTattoosNotes   = "tattoosNotes"
	FieldDependents     = "dependents"
	FieldHeightInInches = "heightInInches"
	FieldWeightInPounds = "weightInPounds"
	FieldWaistInInches  = "waistInInches"
	FieldStage          = "stage"

	// FieldBodyComposition is derived: the body composition status computed
	// from the candidate's measurements with the embedded tables.
	FieldBodyComposition = "bodyComposition"
)

// accessor returns the field value as float64, bool or string, and false when
// the candidate has no value for it.
type accessor func(c *candidate.Candidate) (any, bool)

var accessors = map[string]accessor{
	FieldAge:            func(c *candidate.Candidate) (any, bool) { return intValue(c.Age) },
	FieldPriorService:   func(c *candidate.Candidate) (any, bool) { return c.PriorService, true },
	FieldLegalIssues:    func(c *candidate.Candidate) (any, bool) { return c.LegalIssues, true },
	FieldPhysicalHealth: func(c *candidate.Candidate) (any, bool) { return c.PhysicalHealth, true },
	FieldEducationLevel: func(c *candidate.Candidate) (any, bool) { return c.EducationLevel, true },
	FieldHasTattoos:     func(c *candidate.Candidate) (any, bool) { return c.HasTattoos, true },
	FieldTattoosNotes:   func(c *candidate.Candidate) (any, bool) { return c.TattoosNotes, true },
	FieldDependents:     func(c *candidate.Candidate) (any, bool) { return intValue(c.Dependents) },
	FieldHeightInInches: func(c *candidate.Candidate) (any, bool) { return floatValue(c.HeightInInches) },
	FieldWeightInPounds: func(c *candidate.Candidate) (any, bool) { return floatValue(c.WeightInPounds) },
	FieldWaistInInches:  func(c *candidate.Candidate) (any, bool) { return floatValue(c.WaistInInches) },
	FieldStage:          func(c *candidate.Candidate) (any, bool) { return string(c.Stage), true },

	FieldBodyComposition: func(c *candidate.Candidate) (any, bool) {
		return string(bodycomp.Evaluate(bodycomp.FromCandidate(c)).Status), true
	},
}

func intValue(v *int) (any, bool) {
	if v == nil {
		return nil, false
	}
	return float64(*v), true
}

func floatValue(v *float64) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

// Lookup resolves a field by name. Unknown names are reported as absent.
func Lookup(c *candidate.Candidate, field string) (any, bool) {
	get, ok := accessors[field]
	if !ok || c == nil {
		return nil, false
	}
	return get(c)
}

// KnownField reports whether name is in the accessor table.
func KnownField(name string) bool {
	_, ok := accessors[name]
	return ok
}

// Fields returns the accessor table keys in sorted order.
func Fields() []string {
	names := make([]string, 0, len(accessors))
	for name := range accessors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
