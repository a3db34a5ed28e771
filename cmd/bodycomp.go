package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/bodycomp"
	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/report"
)

var bodycompCmd = &cobra.Command{
	Use:   "bodycomp",
	Short: "Evaluate ad-hoc measurements against the body composition standard",
	Run: func(cmd *cobra.Command, _ []string) {
		evaluateBodyComposition(cmd)
	},
}

func init() {
	rootCmd.AddCommand(bodycompCmd)

	addMeasurementFlags(bodycompCmd)
}

func addMeasurementFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("height", 0, "height in inches")
	cmd.Flags().Float64("weight", 0, "weight in pounds")
	cmd.Flags().Float64("waist", 0, "waist circumference in inches")
	cmd.Flags().String("sex", "", "male or female")
	cmd.Flags().Int("age", 0, "age in years")
}

func evaluateBodyComposition(cmd *cobra.Command) {
	logger, _ := setup()

	in, err := inputFromFlags(cmd)
	if err != nil {
		logger.Fatal("reading measurements", zap.Error(err))
	}

	result := bodycomp.Evaluate(in)

	logger.Info("body composition evaluated", zap.String("result", report.DescribeBodyComposition(result)))

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}

// inputFromFlags keeps flags that were not given absent.
func inputFromFlags(cmd *cobra.Command) (bodycomp.Input, error) {
	var in bodycomp.Input
	flags := cmd.Flags()

	floats := map[string]**float64{
		"height": &in.HeightInches,
		"weight": &in.WeightPounds,
		"waist":  &in.WaistInches,
	}
	for name, target := range floats {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return in, fmt.Errorf("flag %s: %w", name, err)
		}
		*target = candidate.Float(v)
	}

	if flags.Changed("age") {
		age, err := flags.GetInt("age")
		if err != nil {
			return in, fmt.Errorf("flag age: %w", err)
		}
		in.Age = candidate.Int(age)
	}

	if flags.Changed("sex") {
		raw, _ := flags.GetString("sex")
		sex, err := candidate.ParseSex(raw)
		if err != nil {
			return in, fmt.Errorf("flag sex: %w", err)
		}
		in.Sex = sex
	}

	return in, nil
}
