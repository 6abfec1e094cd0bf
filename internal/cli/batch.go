package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/pipeline"
	"github.com/ppiankov/corroborate/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchOut     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify many claims from a file in parallel",
	Long: `Batch verifies claims concurrently:
- Read claims from the input file (one per line, # starts a comment)
- Verify claims in parallel with a configurable worker count
- Share one request budget for the knowledge base across all workers
- Write a single JSON report with one entry per claim

Example:
  corroborate batch claims.txt
  corroborate batch claims.txt --concurrency 8 --json report.json
  corroborate batch claims.txt --batch-timeout 5m --timeout 20s`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().StringVar(&batchOut, "json", "corroborate-report.json", "output JSON path")
	batchCmd.Flags().DurationVar(&batchTimeout, "batch-timeout", 10*time.Minute, "total timeout for batch processing")
	addPipelineFlags(batchCmd)
}

// batchEntry is one claim in the batch report
type batchEntry struct {
	Claim   string         `json:"claim"`
	Verdict *model.Verdict `json:"verdict,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// batchReport is the batch JSON document
type batchReport struct {
	Summary worker.BatchSummary `json:"summary"`
	Results []batchEntry        `json:"results"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, p, err := newPipeline(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}

	ctx, cancel := commandContext(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Corroborate Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Endpoint:     %s\n", p.Endpoint())
	fmt.Fprintf(os.Stderr, "  Rate:         %.1f req/s\n", cfg.Knowledge.RequestsPerSecond)
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", batchOut)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	report := batchReport{
		Summary: worker.Summarize(results),
		Results: make([]batchEntry, 0, len(results)),
	}
	for _, r := range results {
		entry := batchEntry{Claim: r.Claim, Verdict: r.Verdict}
		switch {
		case r.Error != nil:
			entry.Error = r.Error.Error()
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", r.Claim, r.Error)
		case r.Verdict.Supported:
			fmt.Fprintf(os.Stderr, "✓ %s\n", r.Claim)
		default:
			fmt.Fprintf(os.Stderr, "· %s (%s)\n", r.Claim, r.Verdict.Reason)
		}
		report.Results = append(report.Results, entry)
	}

	if err := pipeline.RenderJSON(report, batchOut); err != nil {
		return fmt.Errorf("render JSON: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:         %d claims\n", report.Summary.Total)
	fmt.Fprintf(os.Stderr, "  Corroborated:  %d\n", report.Summary.Supported)
	fmt.Fprintf(os.Stderr, "  Not found:     %d\n", report.Summary.Unsupported)
	fmt.Fprintf(os.Stderr, "  Failures:      %d\n", report.Summary.Failed)
	fmt.Fprintf(os.Stderr, "  Report:        %s\n", batchOut)
	fmt.Fprintf(os.Stderr, "\n")

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch incomplete: %w", err)
	}
	return nil
}
