// Package verify decides whether the knowledge base corroborates an extracted
// birth fact.
package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/corroborate/internal/dates"
	"github.com/ppiankov/corroborate/internal/logging"
	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/sparql"
)

// Runner executes one knowledge base query and returns candidate records
type Runner interface {
	Run(ctx context.Context, query string) ([]model.CandidateRecord, error)
}

// Engine queries every name variant and checks the candidate pool
type Engine struct {
	builder  *sparql.Builder
	runner   Runner
	parser   dates.Parser
	endpoint string
	now      func() time.Time
}

// NewEngine creates a corroboration engine. parser must be the same parser
// used to extract the claim date.
func NewEngine(builder *sparql.Builder, runner Runner, parser dates.Parser) *Engine {
	if builder == nil {
		builder = sparql.NewBuilder(sparql.DefaultLanguage, 0)
	}
	if parser == nil {
		parser = dates.NewRussian()
	}
	return &Engine{
		builder: builder,
		runner:  runner,
		parser:  parser,
		now:     time.Now,
	}
}

// WithEndpoint records the endpoint URL in produced verdicts
func (e *Engine) WithEndpoint(endpoint string) *Engine {
	e.endpoint = endpoint
	return e
}

// Verify reports whether some candidate supports fact
func (e *Engine) Verify(ctx context.Context, fact *model.ExtractedFact) (bool, error) {
	v, err := e.Evaluate(ctx, fact)
	if err != nil {
		return false, err
	}
	return v.Supported, nil
}

// Evaluate runs the full corroboration and returns a verdict.
// Every name variant is queried even after a non-empty result, and all rows
// are pooled in query order.
func (e *Engine) Evaluate(ctx context.Context, fact *model.ExtractedFact) (*model.Verdict, error) {
	if fact == nil {
		fact = &model.ExtractedFact{}
	}

	verdict := &model.Verdict{
		Fact:     *fact,
		Endpoint: e.endpoint,
	}

	var pool []model.CandidateRecord
	for _, name := range sparql.Plan(fact.Names) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := e.runner.Run(ctx, e.builder.Build(name))
		verdict.Queries++
		if err != nil {
			return nil, fmt.Errorf("query knowledge base for %q: %w", name, err)
		}

		logging.WithPrefix("verify").Debug("knowledge base answered", "name", name, "rows", len(records))
		if len(records) == 0 {
			continue
		}
		pool = append(pool, records...)
	}

	verdict.Candidates = len(pool)
	verdict.CheckedAt = e.now()

	if len(pool) == 0 {
		logging.WithPrefix("verify").Warn("knowledge was not found", "names", strings.Join(fact.Names, " "))
		verdict.Reason = model.ReasonKnowledgeNotFound
		if len(fact.Names) == 0 {
			verdict.Reason = model.ReasonNoNames
		}
		return verdict, nil
	}

	for i := range pool {
		if Match(fact, pool[i], e.parser) {
			c := pool[i]
			verdict.Supported = true
			verdict.Reason = model.ReasonMatched
			verdict.Match = &c
			return verdict, nil
		}
	}

	verdict.Reason = model.ReasonNoMatch
	return verdict, nil
}

// Match reports whether candidate satisfies the name, date and place checks
// of fact. Names are compared case-sensitively; places are compared as lemmas.
func Match(fact *model.ExtractedFact, candidate model.CandidateRecord, parser dates.Parser) bool {
	for _, name := range fact.Names {
		if !strings.Contains(candidate.Name, name) {
			return false
		}
	}

	if fact.HasDate() {
		got, ok := parser.Parse(candidate.BirthDateRaw)
		if !ok || !got.Equal(fact.BirthDate.Parsed) {
			return false
		}
	}

	for _, place := range fact.BirthPlaces {
		if !strings.Contains(candidate.BirthPlaceNormalized, place) {
			return false
		}
	}
	return true
}
