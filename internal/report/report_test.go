package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spigell/recruiter/internal/bodycomp"
	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/rules"
)

func sampleCandidates() []*candidate.Candidate {
	return []*candidate.Candidate{
		{
			ID: "c1", Name: "Avery", Stage: candidate.StageMEPS,
			Age: candidate.Int(19), EducationLevel: "Diploma", PhysicalHealth: "cleared",
			HeightInInches: candidate.Float(64), WeightInPounds: candidate.Float(150), Sex: candidate.SexMale,
		},
		{ID: "c2", Stage: candidate.StageProspect},
		nil,
		{
			ID: "c3", Name: "Jordan", Stage: candidate.StageMEPS,
			Age: candidate.Int(16), EducationLevel: "Junior",
		},
		{ID: "c4", Name: "Robin", Stage: candidate.StageDisqualified, Age: candidate.Int(30), EducationLevel: "GED"},
	}
}

func TestBuild(t *testing.T) {
	r := Build(sampleCandidates(), rules.Defaults(), nil)
	if r.Len() != 4 {
		t.Fatalf("expected nil candidates to be skipped, got %d entries", r.Len())
	}

	first := r.Entries[0]
	if first.Eligibility.Headline != rules.Eligible {
		t.Fatalf("expected c1 eligible, got %+v", first.Eligibility)
	}
	if first.BodyComposition.Status != bodycomp.PassNoTape {
		t.Fatalf("expected c1 to pass screening, got %s", first.BodyComposition.Status)
	}

	if r.Entries[1].Name != "c2" {
		t.Fatalf("expected id as display name, got %q", r.Entries[1].Name)
	}
	if r.Entries[1].BodyComposition.Status != bodycomp.NeedsTape {
		t.Fatalf("expected missing measurements to need tape")
	}

	want := map[rules.Headline]int{rules.Eligible: 2, rules.NotEligible: 2}
	if diff := cmp.Diff(want, r.Summary()); diff != "" {
		t.Fatalf("unexpected summary (-want +got):\n%s", diff)
	}
}

func TestByStage(t *testing.T) {
	r := Build(sampleCandidates(), rules.Defaults(), nil)

	groups := r.ByStage()

	var stages []candidate.Stage
	for _, g := range groups {
		stages = append(stages, g.Stage)
	}
	want := []candidate.Stage{candidate.StageProspect, candidate.StageMEPS, candidate.StageDisqualified}
	if diff := cmp.Diff(want, stages); diff != "" {
		t.Fatalf("unexpected stage order (-want +got):\n%s", diff)
	}

	if len(groups[1].Entries) != 2 || groups[1].Entries[0].ID != "c1" || groups[1].Entries[1].ID != "c3" {
		t.Fatalf("expected meps entries in candidate order, got %+v", groups[1].Entries)
	}
}

func TestRenderTable(t *testing.T) {
	r := Build(sampleCandidates(), rules.Defaults(), nil)

	for _, format := range []Format{FormatASCII, FormatMarkdown} {
		out, err := r.Render(format)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		for _, want := range []string{"Avery", "Jordan", "passNoTape", "limit 150 lb", "notEligible"} {
			if !strings.Contains(out, want) {
				t.Fatalf("%s: expected %q in output:\n%s", format, want, out)
			}
		}
	}

	md, _ := r.Render(FormatMarkdown)
	if !strings.Contains(md, "| ") {
		t.Fatalf("expected markdown table, got:\n%s", md)
	}
}

func TestRenderJSON(t *testing.T) {
	r := Build(sampleCandidates(), rules.Defaults(), nil)

	out, err := r.Render(FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var groups []StageGroup
	if err := json.Unmarshal([]byte(out), &groups); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	if _, err := r.Render("pdf"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatASCII, "Markdown": FormatMarkdown, "json": FormatJSON} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDescribeBodyComposition(t *testing.T) {
	limit, measured, max := 154, 21, 22
	got := DescribeBodyComposition(bodycomp.Result{
		Status:                 bodycomp.PassOnSite,
		ScreeningLimit:         &limit,
		MeasuredBodyFatPercent: &measured,
		MaxBodyFatPercent:      &max,
	})
	if got != "passOnSite, limit 154 lb, body fat 21%/22%" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := DescribeBodyComposition(bodycomp.Result{Status: bodycomp.NeedsTape}); got != "needsTape" {
		t.Fatalf("unexpected description %q", got)
	}
}
