package lemma

import (
	"strings"

	"github.com/kljensen/snowball"
)

// Snowball reduces words to Snowball stems. Stems are not dictionary forms, but
// every inflection of a word shares one, which is all substring matching needs.
type Snowball struct {
	language string
}

// NewSnowball creates a stemmer for the given Snowball language ("russian", "english", ...)
func NewSnowball(language string) *Snowball {
	if language == "" {
		language = "russian"
	}
	return &Snowball{language: language}
}

// Lemma returns the stem of word, or its lower-cased form if stemming fails
func (s *Snowball) Lemma(word string) string {
	key := fold(word)
	if key == "" {
		return strings.ToLower(word)
	}
	stem, err := snowball.Stem(key, s.language, true)
	if err != nil || stem == "" {
		return key
	}
	return stem
}
