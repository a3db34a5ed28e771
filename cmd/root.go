package cmd

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "recruiter"
)

type Config struct {
	CandidatesFile string        `mapstructure:"candidates-file"`
	RulesFile      string        `mapstructure:"rules-file"`
	RulesCacheTTL  time.Duration `mapstructure:"rules-cache-ttl"`
	Report         *ReportConfig `mapstructure:"report"`
}

type ReportConfig struct {
	Format string `mapstructure:"format"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "recruiter screens enlistment candidates against eligibility rules and body composition standards",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults()

	viper.SetEnvPrefix(strings.ToUpper(app))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("candidates-file", "RECRUITER_CANDIDATES_FILE"); err != nil {
		log.Fatalf("binding RECRUITER_CANDIDATES_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is recruiter.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("candidates-file", "c", "", "candidates file (default is candidates.json)")
	rootCmd.PersistentFlags().StringP("rules-file", "r", "", "rules file in json or yaml. Default is the built-in rule set.")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("candidates-file", rootCmd.PersistentFlags().Lookup("candidates-file"))
	viper.BindPFlag("rules-file", rootCmd.PersistentFlags().Lookup("rules-file"))
}

func setDefaults() {
	viper.SetDefault("candidates-file", "candidates.json")
	viper.SetDefault("rules-file", "")
	viper.SetDefault("rules-cache-ttl", "30s")
	viper.SetDefault("report.format", "ascii")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional, but we can't proceed if it exists and parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Report == nil {
		config.Report = &ReportConfig{}
	}

	return config, nil
}
