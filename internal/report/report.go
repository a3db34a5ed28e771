package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/spigell/recruiter/internal/bodycomp"
	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/logger"
	"github.com/spigell/recruiter/internal/rules"
)

type Format string

const (
	FormatASCII    Format = "ascii"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

const chipsWidth = 60

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatASCII, FormatMarkdown, FormatJSON:
		return f, nil
	case "":
		return FormatASCII, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Entry is one candidate's combined verdict.
type Entry struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Stage           candidate.Stage `json:"stage"`
	Eligibility     rules.Outcome   `json:"eligibility"`
	BodyComposition bodycomp.Result `json:"bodyComposition"`
}

type Report struct {
	Entries []Entry `json:"entries"`
}

// StageGroup holds the entries of one pipeline stage.
type StageGroup struct {
	Stage   candidate.Stage `json:"stage"`
	Entries []Entry         `json:"entries"`
}

// Build evaluates every candidate against the rule set and body composition
// standard, keeping the candidate order.
func Build(candidates []*candidate.Candidate, ruleSet []rules.Rule, evaluator *bodycomp.Evaluator) *Report {
	if evaluator == nil {
		evaluator = bodycomp.NewEvaluator(nil)
	}

	report := &Report{Entries: make([]Entry, 0, len(candidates))}
	for _, c := range candidates {
		if c == nil {
			continue
		}
		report.Entries = append(report.Entries, Entry{
			ID:              c.ID,
			Name:            c.DisplayName(),
			Stage:           c.Stage,
			Eligibility:     rules.Evaluate(ruleSet, c),
			BodyComposition: evaluator.Evaluate(bodycomp.FromCandidate(c)),
		})
	}
	return report
}

func (r *Report) Len() int {
	return len(r.Entries)
}

// ByStage groups entries in pipeline order. Stages outside the pipeline
// follow it, sorted by name.
func (r *Report) ByStage() []StageGroup {
	index := make(map[candidate.Stage]int)
	var groups []StageGroup
	for _, e := range r.Entries {
		i, ok := index[e.Stage]
		if !ok {
			i = len(groups)
			index[e.Stage] = i
			groups = append(groups, StageGroup{Stage: e.Stage})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		oi, oj := groups[i].Stage.Order(), groups[j].Stage.Order()
		if oi != oj {
			return oi < oj
		}
		return groups[i].Stage < groups[j].Stage
	})
	return groups
}

// Summary counts entries per headline.
func (r *Report) Summary() map[rules.Headline]int {
	summary := make(map[rules.Headline]int)
	for _, e := range r.Entries {
		summary[e.Eligibility.Headline]++
	}
	return summary
}

func (r *Report) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		pretty, err := json.MarshalIndent(r.ByStage(), "", "  ")
		if err != nil {
			return "", err
		}
		return string(pretty), nil
	case FormatASCII, FormatMarkdown, "":
		return r.renderTable(format), nil
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}
}

func (r *Report) renderTable(format Format) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Stage", "ID", "Name", "Eligibility", "Chips", "Body composition"})

	for _, group := range r.ByStage() {
		stage := string(group.Stage)
		if stage == "" {
			stage = "-"
		}
		for _, e := range group.Entries {
			w.AppendRow(table.Row{
				stage,
				e.ID,
				e.Name,
				e.Eligibility.Headline,
				logger.TruncateForLog(strings.Join(e.Eligibility.Chips, "; "), chipsWidth),
				DescribeBodyComposition(e.BodyComposition),
			})
		}
	}

	w.AppendFooter(table.Row{"", "", "Total", r.Len(), describeSummary(r.Summary()), ""})

	if format == FormatMarkdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// DescribeBodyComposition renders a result as a short human readable string.
func DescribeBodyComposition(res bodycomp.Result) string {
	parts := []string{string(res.Status)}
	if res.ScreeningLimit != nil {
		parts = append(parts, fmt.Sprintf("limit %d lb", *res.ScreeningLimit))
	}
	if res.MeasuredBodyFatPercent != nil && res.MaxBodyFatPercent != nil {
		parts = append(parts, fmt.Sprintf("body fat %d%%/%d%%", *res.MeasuredBodyFatPercent, *res.MaxBodyFatPercent))
	}
	return strings.Join(parts, ", ")
}

func describeSummary(summary map[rules.Headline]int) string {
	headlines := make([]rules.Headline, 0, len(summary))
	for h := range summary {
		headlines = append(headlines, h)
	}
	sort.Slice(headlines, func(i, j int) bool {
		return headlines[i].Severity() < headlines[j].Severity()
	})

	parts := make([]string, 0, len(headlines))
	for _, h := range headlines {
		parts = append(parts, fmt.Sprintf("%s: %d", h, summary[h]))
	}
	return strings.Join(parts, ", ")
}
