package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/bodycomp"
	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/rules"
)

// Verdict is the combined answer for one candidate printed by check.
type Verdict struct {
	Candidate       string          `json:"candidate"`
	Stage           candidate.Stage `json:"stage,omitempty"`
	Eligibility     rules.Outcome   `json:"eligibility"`
	BodyComposition bodycomp.Result `json:"bodyComposition"`
	Trace           []rules.Result  `json:"trace,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check [candidate-id]",
	Short: "Evaluate a candidate against the eligibility rules and body composition standard",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		check(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("explain", "x", false, "include the pass/fail trace of every rule")
}

func check(cmd *cobra.Command, args []string) {
	logger, config := setup()

	store := loadStore(logger, config)

	id, err := pickCandidate(store, args)
	if err != nil {
		logger.Fatal("choosing a candidate", zap.Error(err))
	}

	c, err := store.FindByID(id)
	if err != nil {
		logger.Fatal("finding a candidate", zap.Error(err), zap.Strings("known ids", store.IDs()))
	}

	ruleSet := ruleSource(logger, config).Rules()

	explain, _ := cmd.Flags().GetBool("explain")
	verdict := evaluateCandidate(c, ruleSet, explain)

	forCandidate(logger, c).Info("candidate evaluated",
		zap.String("headline", string(verdict.Eligibility.Headline)),
		zap.Strings("chips", verdict.Eligibility.Chips),
		zap.String("body composition", string(verdict.BodyComposition.Status)),
	)

	if explain {
		forCandidate(logger, c).Debug("failed rules", zap.Strings("rules", rules.Failed(verdict.Trace)))
	}

	// do not bother error since the verdict holds only plain values
	pretty, _ := json.MarshalIndent(verdict, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}

func evaluateCandidate(c *candidate.Candidate, ruleSet []rules.Rule, explain bool) Verdict {
	verdict := Verdict{
		Candidate:       c.ID,
		Stage:           c.Stage,
		Eligibility:     rules.Evaluate(ruleSet, c),
		BodyComposition: bodycomp.Evaluate(bodycomp.FromCandidate(c)),
	}

	if explain {
		verdict.Trace = rules.Explain(ruleSet, c)
	}

	return verdict
}
