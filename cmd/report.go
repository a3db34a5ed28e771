package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/bodycomp"
	"github.com/spigell/recruiter/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the pipeline report for every candidate",
	Run: func(cmd *cobra.Command, _ []string) {
		printReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("format", "f", "", "report format: ascii, markdown or json")

	viper.BindPFlag("report.format", reportCmd.Flags().Lookup("format"))
}

func printReport(cmd *cobra.Command) {
	logger, config := setup()

	format, err := report.ParseFormat(config.Report.Format)
	if err != nil {
		logger.Fatal("parsing report format", zap.Error(err))
	}

	store := loadStore(logger, config)
	ruleSet := ruleSource(logger, config).Rules()

	r := report.Build(store.Candidates, ruleSet, bodycomp.NewEvaluator(nil))

	out, err := r.Render(format)
	if err != nil {
		logger.Fatal("rendering report", zap.Error(err))
	}

	logger.Info("report built", zap.Int("candidates", r.Len()), zap.String("format", string(format)))
	fmt.Fprintln(cmd.OutOrStdout(), out)
}
