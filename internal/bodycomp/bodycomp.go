// Package bodycomp classifies body composition compliance with a two tier
// standard: a height/weight screening table first, then a waist
// circumference body fat estimate checked against age and sex ceilings.
//
// The rounding rules are part of the standard. Height and waist round half
// up to whole inches, weight is floored to whole pounds and the chart bucket
// is the weight floored to a multiple of five.
package bodycomp

import (
	"math"

	"github.com/spigell/recruiter/internal/candidate"
)

type Status string

const (
	PassNoTape Status = "passNoTape"
	NeedsTape  Status = "needsTape"
	PassOnSite Status = "passOnSite"
	FailOnSite Status = "failOnSite"
)

// bucketWidth is the weight step of the circumference chart columns.
const bucketWidth = 5

// maxMeasurement bounds usable inches and pounds well inside the int range.
const maxMeasurement = 10000

// Input carries the measurements the evaluator reads. Nil means unknown.
type Input struct {
	HeightInches *float64
	WeightPounds *float64
	WaistInches  *float64
	Sex          candidate.Sex
	Age          *int
}

func FromCandidate(c *candidate.Candidate) Input {
	if c == nil {
		return Input{}
	}
	return Input{
		HeightInches: c.HeightInInches,
		WeightPounds: c.WeightInPounds,
		WaistInches:  c.WaistInInches,
		Sex:          c.Sex,
		Age:          c.Age,
	}
}

type Result struct {
	Status                 Status `json:"status"`
	ScreeningLimit         *int   `json:"screeningLimit,omitempty"`
	MeasuredBodyFatPercent *int   `json:"measuredBodyFatPercent,omitempty"`
	MaxBodyFatPercent      *int   `json:"maxBodyFatPercent,omitempty"`
}

type Evaluator struct {
	tables *Tables
}

// NewEvaluator reads from tables; nil means the embedded defaults.
func NewEvaluator(tables *Tables) *Evaluator {
	if tables == nil {
		tables = Default()
	}
	return &Evaluator{tables: tables}
}

// Evaluate classifies in against the embedded tables.
func Evaluate(in Input) Result {
	return NewEvaluator(nil).Evaluate(in)
}

// Evaluate never fails: any missing or unusable measurement yields NeedsTape.
func (e *Evaluator) Evaluate(in Input) Result {
	height, okHeight := measurement(in.HeightInches)
	weight, okWeight := measurement(in.WeightPounds)
	if !okHeight || !okWeight {
		return Result{Status: NeedsTape}
	}

	roundedHeight := roundHalfUp(height)
	flooredWeight := int(math.Floor(weight))

	tables := e.tables
	if tables == nil {
		tables = Default()
	}

	var result Result
	if limit, ok := tables.HeightWeight.Limit(roundedHeight, in.Sex, in.Age); ok {
		result.ScreeningLimit = &limit
		if flooredWeight <= limit {
			result.Status = PassNoTape
			return result
		}
	}

	waist, ok := measurement(in.WaistInches)
	if !ok {
		result.Status = NeedsTape
		return result
	}

	bucket := int(math.Floor(float64(flooredWeight)/bucketWidth)) * bucketWidth
	measured, okMeasured := tables.Charts[in.Sex].Estimate(roundHalfUp(waist), bucket)
	maxPercent, okMax := tables.BodyFat.Max(in.Sex, in.Age)
	if !okMeasured || !okMax {
		result.Status = NeedsTape
		return result
	}

	result.MeasuredBodyFatPercent = &measured
	result.MaxBodyFatPercent = &maxPercent
	if measured <= maxPercent {
		result.Status = PassOnSite
	} else {
		result.Status = FailOnSite
	}
	return result
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// measurement treats nil, non-finite, non-positive and implausibly large
// values as absent.
func measurement(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	if *v <= 0 || *v > maxMeasurement {
		return 0, false
	}
	return *v, true
}
