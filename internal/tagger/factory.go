package tagger

import (
	"fmt"
	"strings"

	"github.com/ppiankov/corroborate/internal/lemma"
	"github.com/ppiankov/corroborate/internal/model"
)

// New creates the tagger selected by cfg. The normalizer is used by the
// rules tagger for gazetteer lookups.
func New(cfg model.TaggerConfig, normalizer lemma.Normalizer) (Tagger, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "rules":
		if cfg.Gazetteer != "" {
			places, err := LoadGazetteerFile(cfg.Gazetteer)
			if err != nil {
				return nil, err
			}
			return NewRules(normalizer, places...), nil
		}
		return NewRules(normalizer), nil

	case "openai":
		return NewOpenAI(cfg)

	case "ollama":
		return NewOllama(cfg)

	case "anthropic", "claude":
		return NewAnthropic(cfg)

	default:
		return nil, fmt.Errorf("%w: %s (supported: rules, openai, ollama, anthropic)", ErrUnknownProvider, cfg.Provider)
	}
}
