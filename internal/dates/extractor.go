package dates

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/corroborate/internal/model"
)

// Date surface patterns, tried together; the leftmost valid match wins and
// earlier patterns win ties.
var datePatterns = []*regexp.Regexp{
	// 5 мая 1990
	regexp.MustCompile(`\d{1,2}[\s\p{Z}]+\p{L}+[\s\p{Z}]+\d{4}`),
	// 05.05.1990, 5/5/90, 05-05-1990
	regexp.MustCompile(`\d{1,2}[./-]\d{1,2}[./-]\d{2,4}`),
	// 1990-05-05, 1990.5.5
	regexp.MustCompile(`\d{4}[./-]\d{1,2}[./-]\d{1,2}`),
}

// Extractor finds a date substring in free text and parses it
type Extractor struct {
	parser Parser
}

// NewExtractor creates an extractor delegating to parser
func NewExtractor(parser Parser) *Extractor {
	if parser == nil {
		parser = NewRussian()
	}
	return &Extractor{parser: parser}
}

// Parser returns the parser used for found substrings
func (e *Extractor) Parser() Parser {
	return e.parser
}

// Find returns the first date-like substring of text
func (e *Extractor) Find(text string) (string, bool) {
	best := -1
	var found string

	for _, re := range datePatterns {
		start, end, ok := firstBounded(re, text)
		if !ok {
			continue
		}
		if best == -1 || start < best {
			best = start
			found = text[start:end]
		}
	}

	return found, best != -1
}

// Extract finds and parses a date. A missing or unparseable date yields nil.
func (e *Extractor) Extract(text string) *model.BirthDate {
	raw, ok := e.Find(text)
	if !ok {
		return nil
	}
	return e.ParseRaw(raw)
}

// ParseRaw parses an already isolated date substring
func (e *Extractor) ParseRaw(raw string) *model.BirthDate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parsed, ok := e.parser.Parse(raw)
	if !ok {
		return nil
	}
	return &model.BirthDate{Raw: raw, Parsed: parsed}
}

// firstBounded returns the first match of re that is not glued to
// neighbouring word characters
func firstBounded(re *regexp.Regexp, text string) (int, int, bool) {
	offset := 0
	for offset < len(text) {
		loc := re.FindStringIndex(text[offset:])
		if loc == nil {
			return 0, 0, false
		}

		start, end := offset+loc[0], offset+loc[1]
		if isBoundary(text, start, end) {
			return start, end, true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return 0, 0, false
}

func isBoundary(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
