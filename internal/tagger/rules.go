package tagger

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/corroborate/internal/dates"
	"github.com/ppiankov/corroborate/internal/lemma"
	"github.com/ppiankov/corroborate/internal/model"
)

//go:embed gazetteer.yaml
var builtinGazetteer []byte

var tokenRe = regexp.MustCompile(`\p{L}[\p{L}\p{M}'’-]*|\d+(?:[./-]\d+)*|[^\s\p{L}\d]`)

// Words after which a capitalized run names a place
var locationPrepositions = map[string]bool{
	"в": true, "во": true, "на": true, "из": true, "под": true, "около": true, "близ": true,
	"in": true, "at": true, "near": true, "from": true,
}

// Capitalized function words that never start a name
var stopWords = map[string]bool{
	"он": true, "она": true, "они": true, "оно": true, "это": true, "этот": true, "эта": true,
	"в": true, "во": true, "на": true, "из": true, "под": true, "около": true, "и": true,
	"родился": true, "родилась": true, "рожден": true, "рождена": true, "дата": true, "место": true,
	"когда": true, "где": true, "мой": true, "моя": true, "наш": true, "наша": true, "известный": true,
	"the": true, "in": true, "at": true, "he": true, "she": true, "was": true, "born": true, "on": true,
}

// Rules is an offline heuristic tagger for Russian and English claims.
// Capitalized words are names unless a location preposition precedes them or
// the gazetteer knows them; digits and month names are dates.
type Rules struct {
	normalizer lemma.Normalizer
	places     map[string]bool
}

// NewRules creates a rules tagger with the built-in gazetteer plus extra place lemmas
func NewRules(normalizer lemma.Normalizer, extraPlaces ...string) *Rules {
	if normalizer == nil {
		if d, err := lemma.Default(); err == nil {
			normalizer = d
		} else {
			normalizer = lemma.Func(strings.ToLower)
		}
	}

	r := &Rules{
		normalizer: normalizer,
		places:     make(map[string]bool),
	}

	var builtin []string
	if err := yaml.Unmarshal(builtinGazetteer, &builtin); err == nil {
		r.addPlaces(builtin)
	}
	r.addPlaces(extraPlaces)

	return r
}

func (r *Rules) addPlaces(places []string) {
	for _, p := range places {
		if p = strings.TrimSpace(p); p != "" {
			r.places[r.normalizer.Lemma(p)] = true
		}
	}
}

// Name returns the backend name
func (r *Rules) Name() string {
	return "rules"
}

// Tag labels every token of text
func (r *Rules) Tag(ctx context.Context, text string) ([]model.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := tokenRe.FindAllString(text, -1)
	tokens := make([]model.Token, 0, len(words))

	inLocation := false
	prevDate := false

	for _, w := range words {
		tok := model.Token{Text: w, Type: model.EntityOther}
		lower := strings.ToLower(w)
		first, _ := utf8.DecodeRuneInString(w)

		switch {
		case unicode.IsDigit(first):
			tok.Type = model.EntityDate
			inLocation = false

		case !unicode.IsLetter(first):
			inLocation = false

		case isMonth(lower) && prevDate, prevDate && (lower == "г" || lower == "года" || lower == "год"):
			tok.Type = model.EntityDate
			inLocation = false

		case unicode.IsUpper(first):
			switch {
			case inLocation || r.places[r.normalizer.Lemma(w)]:
				tok.Type = model.EntityLocation
				inLocation = true
			case stopWords[lower]:
				inLocation = locationPrepositions[lower]
			default:
				tok.Type = model.EntityPerson
			}

		default:
			inLocation = locationPrepositions[lower]
		}

		prevDate = tok.Type == model.EntityDate
		tokens = append(tokens, tok)
	}

	return tokens, nil
}

func isMonth(word string) bool {
	_, ok := dates.MonthFromName(word)
	return ok
}

// LoadGazetteerFile reads a YAML list of extra place names
func LoadGazetteerFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}

	var places []string
	if err := yaml.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("decode gazetteer: %w", err)
	}
	return places, nil
}
