package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/candidate"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Manage the candidates file",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates in pipeline order",
	Run: func(cmd *cobra.Command, _ []string) {
		listCandidates(cmd)
	},
}

var candidatesStageCmd = &cobra.Command{
	Use:   "stage [candidate-id] [stage]",
	Short: "Move a candidate to another pipeline stage",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		stageCandidate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.AddCommand(candidatesListCmd, candidatesStageCmd)

	candidatesStageCmd.Flags().BoolP("next", "n", false, "advance the candidate to the following pipeline stage")
}

func listCandidates(cmd *cobra.Command) {
	logger, config := setup()
	store := loadStore(logger, config)

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"ID", "Name", "Stage", "Age", "Sex"})

	ordered := append([]*candidate.Candidate(nil), store.Candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Stage.Order() < ordered[j].Stage.Order()
	})

	for _, c := range ordered {
		age := "-"
		if c.Age != nil {
			age = strconv.Itoa(*c.Age)
		}
		w.AppendRow(table.Row{c.ID, c.DisplayName(), c.Stage, age, c.Sex})
	}
	w.AppendFooter(table.Row{"", "Total", store.Len(), "", ""})

	fmt.Fprintln(cmd.OutOrStdout(), w.Render())
}

func stageCandidate(cmd *cobra.Command, args []string) {
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

	next, _ := cmd.Flags().GetBool("next")
	stage, err := targetStage(c, args, next)
	if err != nil {
		forCandidate(logger, c).Fatal("choosing a stage", zap.Error(err))
	}

	previous := c.Stage
	if err := store.SetStage(c.ID, stage); err != nil {
		logger.Fatal("setting a stage", zap.Error(err))
	}

	if err := store.Save(config.CandidatesFile); err != nil {
		logger.Fatal("saving candidates", zap.Error(err), zap.String("file", config.CandidatesFile))
	}

	forCandidate(logger, c).Info("candidate moved", zap.String("from", string(previous)))
}

// targetStage resolves the new stage from args, the --next flag or a prompt.
func targetStage(c *candidate.Candidate, args []string, next bool) (candidate.Stage, error) {
	if len(args) > 1 {
		return candidate.ParseStage(args[1])
	}

	if next {
		stage, ok := c.Stage.Next()
		if !ok {
			return "", fmt.Errorf("stage %q has no following stage", c.Stage)
		}
		return stage, nil
	}

	items := make([]string, 0, len(candidate.Pipeline)+1)
	for _, s := range candidate.Pipeline {
		items = append(items, string(s))
	}
	items = append(items, string(candidate.StageDisqualified))

	stagePrompt := promptui.Select{
		Label: fmt.Sprintf("Choose a stage for %s (now %s)", c.DisplayName(), c.Stage),
		Items: items,
	}

	_, selected, err := stagePrompt.Run()
	if err != nil {
		return "", err
	}

	return candidate.ParseStage(selected)
}
