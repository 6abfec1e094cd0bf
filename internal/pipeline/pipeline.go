package pipeline

import (
	"context"
	"fmt"

	"github.com/ppiankov/corroborate/internal/dates"
	"github.com/ppiankov/corroborate/internal/extract"
	"github.com/ppiankov/corroborate/internal/lemma"
	"github.com/ppiankov/corroborate/internal/logging"
	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/sparql"
	"github.com/ppiankov/corroborate/internal/tagger"
	"github.com/ppiankov/corroborate/internal/verify"
)

// Pipeline wires extraction and corroboration for one configuration
type Pipeline struct {
	extractor *extract.FactExtractor
	builder   *sparql.Builder
	client    *sparql.Client
	engine    *verify.Engine
	config    *model.Config
}

// NewPipeline builds every collaborator from cfg. limiter may be nil; batch
// mode passes one limiter shared by all workers.
func NewPipeline(cfg *model.Config, limiter sparql.RateLimiter) (*Pipeline, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	normalizer, err := lemma.New(cfg.Normalizer)
	if err != nil {
		return nil, fmt.Errorf("init normalizer: %w", err)
	}

	t, err := tagger.New(cfg.Tagger, normalizer)
	if err != nil {
		return nil, fmt.Errorf("init tagger: %w", err)
	}

	parser := dates.NewRussian()
	extractor := extract.NewFactExtractor(t, normalizer, dates.NewExtractor(parser),
		extract.WithTaggerDates(cfg.Extract.TaggerDates))

	builder := sparql.NewBuilder(cfg.Knowledge.Language, cfg.Knowledge.Limit)
	client := sparql.NewClient(cfg.Knowledge, limiter)
	engine := verify.NewEngine(builder, sparql.NewAdapter(client, normalizer), parser).
		WithEndpoint(client.Endpoint())

	logging.Debug("pipeline ready",
		"tagger", t.Name(),
		"normalizer", cfg.Normalizer.Backend,
		"endpoint", client.Endpoint(),
		"language", builder.Language())

	return &Pipeline{
		extractor: extractor,
		builder:   builder,
		client:    client,
		engine:    engine,
		config:    cfg,
	}, nil
}

// Extract returns the structured fact for claim without querying the knowledge base
func (p *Pipeline) Extract(ctx context.Context, claim string) (*model.ExtractedFact, error) {
	fact, err := p.extractor.Extract(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("extract fact: %w", err)
	}
	return fact, nil
}

// Verify extracts the fact from claim and corroborates it
func (p *Pipeline) Verify(ctx context.Context, claim string) (*model.Verdict, error) {
	fact, err := p.Extract(ctx, claim)
	if err != nil {
		return nil, err
	}

	verdict, err := p.engine.Evaluate(ctx, fact)
	if err != nil {
		return nil, err
	}
	verdict.Claim = claim

	logging.Info("claim checked",
		"supported", verdict.Supported,
		"reason", verdict.Reason,
		"queries", verdict.Queries,
		"candidates", verdict.Candidates)

	return verdict, nil
}

// Queries returns the SPARQL queries Verify would issue for fact, in order
func (p *Pipeline) Queries(fact *model.ExtractedFact) []string {
	plan := sparql.Plan(fact.Names)
	queries := make([]string, len(plan))
	for i, name := range plan {
		queries[i] = p.builder.Build(name)
	}
	return queries
}

// Query returns the SPARQL query for a single name variant
func (p *Pipeline) Query(name string) string {
	return p.builder.Build(name)
}

// Endpoint returns the knowledge base endpoint URL
func (p *Pipeline) Endpoint() string {
	return p.client.Endpoint()
}
