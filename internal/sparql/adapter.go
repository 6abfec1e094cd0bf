package sparql

import (
	"context"

	"github.com/ppiankov/corroborate/internal/lemma"
	"github.com/ppiankov/corroborate/internal/model"
)

// Adapter runs queries and maps result rows into candidate records
type Adapter struct {
	querier    Querier
	normalizer lemma.Normalizer
}

// NewAdapter creates a new adapter
func NewAdapter(q Querier, n lemma.Normalizer) *Adapter {
	return &Adapter{querier: q, normalizer: n}
}

// Run executes query and returns one record per row, birth place lemmatized.
// Missing variables map to empty strings.
func (a *Adapter) Run(ctx context.Context, query string) ([]model.CandidateRecord, error) {
	rows, err := a.querier.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	records := make([]model.CandidateRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.CandidateRecord{
			Name:                 row["name"],
			BirthDateRaw:         row["birthDate"],
			BirthPlaceNormalized: lemma.Sentence(a.normalizer, row["birthPlace"]),
		})
	}
	return records, nil
}
