package candidate

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StageProspect     Stage = "prospect"
	StageAppointment  Stage = "appointment"
	StageProcessing   Stage = "processing"
	StageMEPS         Stage = "meps"
	StageDEP          Stage = "dep"
	StageShipped      Stage = "shipped"
	StageDisqualified Stage = "disqualified"
)

// Pipeline lists the active stages in the order a candidate moves through them.
var Pipeline = []Stage{
	StageProspect,
	StageAppointment,
	StageProcessing,
	StageMEPS,
	StageDEP,
	StageShipped,
}

func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	if stage == StageDisqualified {
		return stage, nil
	}
	for _, known := range Pipeline {
		if stage == known {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// Next returns the stage that follows s. Shipped, disqualified and unknown
// stages have no successor.
func (s Stage) Next() (Stage, bool) {
	for i, known := range Pipeline {
		if s == known && i+1 < len(Pipeline) {
			return Pipeline[i+1], true
		}
	}
	return "", false
}

// Order is the position of s in the pipeline. Stages outside the pipeline
// sort after it.
func (s Stage) Order() int {
	for i, known := range Pipeline {
		if s == known {
			return i
		}
	}
	return len(Pipeline)
}
