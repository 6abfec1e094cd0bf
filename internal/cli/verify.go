package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/pipeline"
	"github.com/ppiankov/corroborate/internal/worker"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	endpoint    string
	language    string
	provider    string
	timeout     time.Duration
	taggerDates bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Check a single birth claim against the knowledge base",
	Long: `Verify extracts names, a birth date and birth places from the claim,
queries the knowledge base for every name and prints whether any
returned person record agrees with the claim.

Example:
  corroborate verify "Владимир Ковалевский родился на Украине"
  corroborate verify "Иван Иванов родился 5 мая 1990 в Москве" --json verdict.json
  corroborate verify "..." --tagger openai --endpoint http://localhost:8890/sparql`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <claim>",
	Short: "Print the fact extracted from a claim without querying",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <name>",
	Short: "Print the SPARQL query issued for a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	rootCmd.AddCommand(verifyCmd, extractCmd, queryCmd)

	verifyCmd.Flags().StringVar(&outJSON, "json", "", "write the verdict as JSON to this path")

	for _, cmd := range []*cobra.Command{verifyCmd, extractCmd, queryCmd} {
		addPipelineFlags(cmd)
	}
}

// addPipelineFlags registers the flags that override configuration values
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "SPARQL endpoint URL")
	cmd.Flags().StringVar(&language, "lang", "", "language tag for names and places")
	cmd.Flags().StringVar(&provider, "tagger", "", "entity tagger (rules, openai, ollama, anthropic)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "knowledge base request timeout")
	cmd.Flags().BoolVar(&taggerDates, "tagger-dates", false, "prefer DATE entities from the tagger over the regex date search")
}

// buildConfig loads configuration and applies the flags set on cmd
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Knowledge.Endpoint = endpoint
	}
	if flags.Changed("lang") {
		cfg.Knowledge.Language = language
	}
	if flags.Changed("tagger") {
		cfg.Tagger.Provider = provider
	}
	if flags.Changed("timeout") {
		cfg.Knowledge.Timeout = timeout
	}
	if flags.Changed("tagger-dates") {
		cfg.Extract.TaggerDates = taggerDates
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	if cfg.Tagger.APIKey == "" {
		switch strings.ToLower(cfg.Tagger.Provider) {
		case "openai":
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		case "anthropic", "claude":
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

func newPipeline(cmd *cobra.Command) (*model.Config, *pipeline.Pipeline, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	limiter := worker.NewLimiter(cfg.Knowledge.RequestsPerSecond, cfg.Knowledge.BurstSize)
	p, err := pipeline.NewPipeline(cfg, limiter)
	if err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := args[0]

	cfg, p, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Claim:     %s\n", claim)
		fmt.Fprintf(os.Stderr, "Endpoint:  %s\n", p.Endpoint())
		fmt.Fprintf(os.Stderr, "Tagger:    %s\n", cfg.Tagger.Provider)
		fmt.Fprintln(os.Stderr)
	}

	verdict, err := p.Verify(cmd.Context(), claim)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	pipeline.RenderSummary(cmd.OutOrStdout(), verdict)

	if outJSON != "" {
		if err := pipeline.RenderJSON(verdict, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	fact, err := p.Extract(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return pipeline.WriteJSON(cmd.OutOrStdout(), fact)
}

func runQuery(cmd *cobra.Command, args []string) error {
	_, p, err := newPipeline(cmd)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Query(args[0]))
	return err
}

// commandContext returns ctx bounded by d, or ctx itself when d is zero
func commandContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
