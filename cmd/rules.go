package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate eligibility rule sets",
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active rule set",
	Run: func(cmd *cobra.Command, _ []string) {
		showRules(cmd)
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a rule file and report malformed rules",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		validateRules(args[0])
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesShowCmd, rulesValidateCmd)

	rulesShowCmd.Flags().Bool("yaml", false, "print the rule set as yaml")
	rulesShowCmd.Flags().Bool("defaults", false, "print the built-in rule set even if a rules file is configured")
}

func showRules(cmd *cobra.Command) {
	logger, config := setup()

	ruleSet := rules.Defaults()
	if useDefaults, _ := cmd.Flags().GetBool("defaults"); !useDefaults {
		ruleSet = ruleSource(logger, config).Rules()
	}

	format := rules.FormatJSON
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		format = rules.FormatYAML
	}

	out, err := rules.Marshal(ruleSet, format)
	if err != nil {
		logger.Fatal("marshaling rules", zap.Error(err))
	}

	logger.Debug("showing rules", zap.Int("count", len(ruleSet)), zap.String("format", string(format)))
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}

func validateRules(path string) {
	logger, _ := setup()

	ruleSet, skipped, err := rules.LoadFile(path)
	if err != nil {
		logger.Fatal("loading rules", zap.Error(err), zap.String("file", path))
	}

	for _, s := range skipped {
		logger.Warn("malformed rule",
			zap.Int("index", s.Index),
			zap.String("rule", s.Name),
			zap.Error(s.Err),
		)
	}

	if len(skipped) > 0 {
		logger.Fatal("rule file has malformed rules",
			zap.String("file", path),
			zap.Int("valid", len(ruleSet)),
			zap.Int("skipped", len(skipped)),
		)
	}

	logger.Info("rule file is valid", zap.String("file", path), zap.Int("rules", len(ruleSet)))
}
