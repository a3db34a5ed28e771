package candidate

import (
	"fmt"
	"strings"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex accepts the canonical values and the common single letter forms.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	default:
		return "", fmt.Errorf("unknown sex %q", s)
	}
}

type MedicalFlag string

const (
	MedicalAsthma     MedicalFlag = "asthma"
	MedicalADHD       MedicalFlag = "adhd"
	MedicalVision     MedicalFlag = "vision"
	MedicalHearing    MedicalFlag = "hearing"
	MedicalSurgery    MedicalFlag = "surgery"
	MedicalMedication MedicalFlag = "medication"
)

type LegalFlag string

const (
	LegalTraffic     LegalFlag = "traffic"
	LegalMisdemeanor LegalFlag = "misdemeanor"
	LegalFelony      LegalFlag = "felony"
	LegalDrug        LegalFlag = "drug"
	LegalJuvenile    LegalFlag = "juvenile"
)

// Candidate is an applicant record. Optional numbers are nil when unknown.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	Age            *int     `json:"age,omitempty"`
	HeightInInches *float64 `json:"heightInInches,omitempty"`
	WeightInPounds *float64 `json:"weightInPounds,omitempty"`
	WaistInInches  *float64 `json:"waistInInches,omitempty"`
	Dependents     *int     `json:"dependents,omitempty"`
	Sex            Sex      `json:"sex,omitempty"`

	EducationLevel string `json:"educationLevel,omitempty"`
	LegalIssues    string `json:"legalIssues,omitempty"`
	PhysicalHealth string `json:"physicalHealth,omitempty"`
	TattoosNotes   string `json:"tattoosNotes,omitempty"`

	PriorService bool `json:"priorService,omitempty"`
	HasTattoos   bool `json:"hasTattoos,omitempty"`

	Stage Stage `json:"stage,omitempty"`

	MedicalFlags []MedicalFlag `json:"medicalFlags,omitempty"`
	LegalFlags   []LegalFlag   `json:"legalFlags,omitempty"`
}

// Int returns a pointer to v. Handy for building candidates in code.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// DisplayName falls back to the id for unnamed records.
func (c *Candidate) DisplayName() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.ID
}
