package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/corroborate/internal/model"
)

// Verifier corroborates one claim
type Verifier interface {
	Verify(ctx context.Context, claim string) (*model.Verdict, error)
}

// VerifyJob verifies a single claim
type VerifyJob struct {
	Claim    string
	Verifier Verifier
}

// Execute runs the verification
func (j *VerifyJob) Execute(ctx context.Context) Result {
	verdict, err := j.Verifier.Verify(ctx, j.Claim)
	return &VerifyResult{
		Claim:   j.Claim,
		Verdict: verdict,
		Error:   err,
	}
}

// VerifyResult is the outcome of one claim in a batch
type VerifyResult struct {
	Claim   string
	Verdict *model.Verdict
	Error   error
}

// GetError returns the verification error, if any
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchSummary counts batch outcomes
type BatchSummary struct {
	Total       int `json:"total"`
	Supported   int `json:"supported"`
	Unsupported int `json:"unsupported"`
	Failed      int `json:"failed"`
}

// Summarize counts supported, unsupported and failed results
func Summarize(results []*VerifyResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Error != nil:
			s.Failed++
		case r.Verdict != nil && r.Verdict.Supported:
			s.Supported++
		default:
			s.Unsupported++
		}
	}
	return s
}

// BatchProcessor verifies many claims concurrently
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies claims and returns exactly one result per claim, in
// input order. Claims the pool never ran carry the context error.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, claim := range claims {
		pool.Submit(&VerifyJob{Claim: claim, Verifier: b.verifier})
	}

	results := pool.Wait()

	out := make([]*VerifyResult, len(claims))
	for i, claim := range claims {
		if i < len(results) && results[i] != nil {
			out[i] = results[i].(*VerifyResult)
			continue
		}
		out[i] = &VerifyResult{Claim: claim, Error: notRun(ctx)}
	}
	return out
}

func notRun(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("not verified: %w", err)
	}
	return fmt.Errorf("not verified: %w", context.Canceled)
}

// ProcessFile reads claims from a file and verifies them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads one claim per line. Blank lines and lines starting
// with # are skipped; repeated claims are kept once.
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
