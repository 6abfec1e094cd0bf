package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/corroborate/internal/dates"
	"github.com/ppiankov/corroborate/internal/lemma"
	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/tagger"
)

// FactExtractor turns a free-text birth claim into an ExtractedFact
type FactExtractor struct {
	tagger      tagger.Tagger
	normalizer  lemma.Normalizer
	dates       *dates.Extractor
	taggerDates bool
}

// Option configures a FactExtractor
type Option func(*FactExtractor)

// WithTaggerDates makes DATE tokens from the tagger take precedence over the
// regex date search
func WithTaggerDates(enabled bool) Option {
	return func(e *FactExtractor) {
		e.taggerDates = enabled
	}
}

// NewFactExtractor creates a new fact extractor
func NewFactExtractor(t tagger.Tagger, n lemma.Normalizer, d *dates.Extractor, opts ...Option) *FactExtractor {
	if d == nil {
		d = dates.NewExtractor(nil)
	}

	e := &FactExtractor{
		tagger:     t,
		normalizer: n,
		dates:      d,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract tags text and buckets its entities into names, places and a birth date
func (e *FactExtractor) Extract(ctx context.Context, text string) (*model.ExtractedFact, error) {
	fact := &model.ExtractedFact{
		Names:       []string{},
		BirthPlaces: []string{},
	}

	if strings.TrimSpace(text) == "" {
		return fact, nil
	}

	tokens, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag entities: %w", err)
	}

	seenPlaces := make(map[string]bool)
	var dateWords []string

	for _, tok := range tokens {
		switch tok.Type {
		case model.EntityPerson:
			fact.Names = append(fact.Names, tok.Text)

		case model.EntityLocation:
			place := e.normalizer.Lemma(tok.Text)
			if place != "" && !seenPlaces[place] {
				seenPlaces[place] = true
				fact.BirthPlaces = append(fact.BirthPlaces, place)
			}

		case model.EntityDate:
			dateWords = append(dateWords, tok.Text)
		}
	}

	if e.taggerDates && len(dateWords) > 0 {
		fact.BirthDate = e.dates.ParseRaw(strings.Join(dateWords, " "))
	}
	if fact.BirthDate == nil {
		fact.BirthDate = e.dates.Extract(text)
	}

	return fact, nil
}
