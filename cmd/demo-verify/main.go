// Demo program that corroborates one reference claim against the public
// DBpedia endpoint and prints every step
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/corroborate/internal/logging"
	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/pipeline"
	"github.com/ppiankov/corroborate/internal/worker"
)

const referenceClaim = "Владимир Ковалевский родился на Украине"

func main() {
	fmt.Println("=== Birth Claim Corroboration Demo ===")
	fmt.Println()

	logging.Init(os.Stderr, "info")

	claim := referenceClaim
	if len(os.Args) > 1 {
		claim = strings.Join(os.Args[1:], " ")
	}

	cfg := model.DefaultConfig()
	if endpoint := os.Getenv("CORROBORATE_KNOWLEDGE_ENDPOINT"); endpoint != "" {
		cfg.Knowledge.Endpoint = endpoint
	}

	limiter := worker.NewLimiter(cfg.Knowledge.RequestsPerSecond, cfg.Knowledge.BurstSize)
	p, err := pipeline.NewPipeline(cfg, limiter)
	if err != nil {
		fmt.Printf("  Setup error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Printf("Claim: %s\n", claim)
	fmt.Println(strings.Repeat("-", 60))

	fact, err := p.Extract(ctx, claim)
	if err != nil {
		fmt.Printf("  Extraction error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Names:        %v\n", fact.Names)
	fmt.Printf("  Birth places: %v\n", fact.BirthPlaces)
	if fact.BirthDate != nil {
		fmt.Printf("  Birth date:   %s\n", fact.BirthDate.Parsed.Format("2006-01-02"))
	}
	fmt.Printf("  Queries:      %d against %s\n", len(p.Queries(fact)), p.Endpoint())
	fmt.Println()

	verdict, err := p.Verify(ctx, claim)
	if err != nil {
		fmt.Printf("  Verification error: %v\n", err)
		os.Exit(1)
	}

	pipeline.RenderSummary(os.Stdout, verdict)
	fmt.Println()
	fmt.Printf("verify -> %v\n", verdict.Supported)
}
