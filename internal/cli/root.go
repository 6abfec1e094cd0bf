package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/corroborate/internal/logging"
	"github.com/ppiankov/corroborate/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the corroborate release
const Version = "v0.1.0"

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "corroborate",
	Short: "Corroborate - check birth claims against DBpedia",
	Long: `Corroborate checks short natural-language birth claims ("X was born in Y
on Z") against a public knowledge graph.

It extracts person names, a birth date and birth places from the claim,
queries a SPARQL endpoint for every name and reports whether any returned
person record agrees with the claim.

A negative verdict means the knowledge base did not confirm the claim,
not that the claim is false.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := viper.GetString("output.log_level")
		if verbose {
			level = "debug"
		}
		logging.Init(os.Stderr, level)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of corroborate.`,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "corroborate %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.corroborate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".corroborate"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// CORROBORATE_KNOWLEDGE_ENDPOINT overrides knowledge.endpoint
	viper.SetEnvPrefix("CORROBORATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so env overrides work without a config file
func setDefaults(cfg *model.Config) {
	defaults := map[string]interface{}{
		"knowledge.endpoint":            cfg.Knowledge.Endpoint,
		"knowledge.language":            cfg.Knowledge.Language,
		"knowledge.limit":               cfg.Knowledge.Limit,
		"knowledge.timeout":             cfg.Knowledge.Timeout,
		"knowledge.user_agent":          cfg.Knowledge.UserAgent,
		"knowledge.max_body_bytes":      cfg.Knowledge.MaxBodyBytes,
		"knowledge.requests_per_second": cfg.Knowledge.RequestsPerSecond,
		"knowledge.burst":               cfg.Knowledge.BurstSize,
		"knowledge.http_proxy":          cfg.Knowledge.HTTPProxy,
		"knowledge.https_proxy":         cfg.Knowledge.HTTPSProxy,
		"knowledge.no_proxy":            cfg.Knowledge.NoProxy,
		"tagger.provider":               cfg.Tagger.Provider,
		"tagger.model":                  cfg.Tagger.Model,
		"tagger.base_url":               cfg.Tagger.BaseURL,
		"tagger.api_key":                cfg.Tagger.APIKey,
		"tagger.timeout":                cfg.Tagger.Timeout,
		"tagger.gazetteer":              cfg.Tagger.Gazetteer,
		"normalizer.backend":            cfg.Normalizer.Backend,
		"normalizer.dictionary":         cfg.Normalizer.Dictionary,
		"normalizer.cache_ttl":          cfg.Normalizer.CacheTTL,
		"extract.tagger_dates":          cfg.Extract.TaggerDates,
		"concurrency.workers":           cfg.Concurrency.Workers,
		"output.verbose":                cfg.Output.Verbose,
		"output.log_level":              cfg.Output.LogLevel,
	}
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// loadConfig merges defaults, config file, environment and bound flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Output.LogLevel == "" {
		cfg.Output.LogLevel = model.DefaultConfig().Output.LogLevel
	}

	if cfg.Tagger.APIKey == "" {
		switch strings.ToLower(cfg.Tagger.Provider) {
		case "openai":
			cfg.Tagger.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.Tagger.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if cfg.Tagger.BaseURL == "" && strings.ToLower(cfg.Tagger.Provider) == "ollama" {
		cfg.Tagger.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}

	return cfg, nil
}
