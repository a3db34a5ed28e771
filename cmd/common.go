package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/logger"
	"github.com/spigell/recruiter/internal/rules"
)

var errNoCandidates = errors.New("no candidates in the candidates file")

// setup builds the logger and reads the config. Both failures are fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting with config",
		zap.String("candidates-file", config.CandidatesFile),
		zap.String("rules-file", config.RulesFile),
		zap.Duration("rules-cache-ttl", config.RulesCacheTTL),
		zap.String("report-format", config.Report.Format),
	)

	return l, config
}

func loadStore(l *zap.Logger, config *Config) *candidate.Store {
	store, err := candidate.Load(config.CandidatesFile)
	if err != nil {
		l.Fatal("loading candidates", zap.Error(err), zap.String("file", config.CandidatesFile))
	}

	l.Debug("candidates loaded", zap.Int("count", store.Len()), zap.String("file", config.CandidatesFile))
	return store
}

func ruleSource(l *zap.Logger, config *Config) *rules.Source {
	return rules.NewSource(config.RulesFile, config.RulesCacheTTL, l)
}

func forCandidate(l *zap.Logger, c *candidate.Candidate) *zap.Logger {
	return logger.ForCandidate(l, c.ID, string(c.Stage))
}

// pickCandidate returns the id given in args or asks for one interactively.
func pickCandidate(store *candidate.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if store.Len() == 0 {
		return "", errNoCandidates
	}

	items := make([]string, 0, store.Len())
	for _, c := range store.Candidates {
		items = append(items, fmt.Sprintf("%s %s / %s", c.ID, c.DisplayName(), c.Stage))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: items,
	}

	i, _, err := candidatePrompt.Run()
	if err != nil {
		return "", err
	}

	return store.Candidates[i].ID, nil
}
