package lemma

import (
	"fmt"
	"strings"

	"github.com/ppiankov/corroborate/internal/model"
)

// New builds the normalizer described by cfg
func New(cfg model.NormalizerConfig) (Normalizer, error) {
	var n Normalizer

	switch strings.ToLower(cfg.Backend) {
	case "", "hybrid":
		d, err := loadDictionary(cfg.Dictionary)
		if err != nil {
			return nil, err
		}
		n = NewHybrid(d, NewSnowball("russian"))

	case "dictionary":
		d, err := loadDictionary(cfg.Dictionary)
		if err != nil {
			return nil, err
		}
		n = d

	case "snowball":
		n = NewSnowball("russian")

	default:
		return nil, fmt.Errorf("unknown normalizer backend: %s (supported: hybrid, dictionary, snowball)", cfg.Backend)
	}

	if cfg.CacheTTL > 0 {
		n = NewCached(n, cfg.CacheTTL)
	}
	return n, nil
}

func loadDictionary(path string) (*Dictionary, error) {
	var (
		d   *Dictionary
		err error
	)
	if path != "" {
		d, err = LoadDictionaryFile(path)
	} else {
		d, err = Default()
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return d, nil
}
