// Package lemma normalizes words to a dictionary form so place names from the
// claim and from the knowledge base can be compared lemma to lemma.
package lemma

import (
	"strings"
	"unicode"
)

// Normalizer maps a single word to its lemma
type Normalizer interface {
	Lemma(word string) string
}

// Func adapts a plain function to the Normalizer interface
type Func func(word string) string

// Lemma calls f(word)
func (f Func) Lemma(word string) string {
	return f(word)
}

// Sentence lemmatizes every whitespace-separated token of text independently
// and joins the results with single spaces.
func Sentence(n Normalizer, text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = n.Lemma(w)
	}
	return strings.Join(words, " ")
}

// fold lower-cases a word and strips surrounding punctuation
func fold(word string) string {
	word = strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) && r != '-'
	})
	return strings.ToLower(word)
}
