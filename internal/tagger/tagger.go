// Package tagger provides named-entity taggers that label PERSON, LOCATION and
// DATE spans in a claim.
package tagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/corroborate/internal/model"
)

// ErrUnknownProvider is returned for an unsupported tagger provider name
var ErrUnknownProvider = errors.New("unknown tagger provider")

// Tagger labels entity tokens in raw text
type Tagger interface {
	// Name returns the backend name
	Name() string

	// Tag returns the tokens of text in order of appearance
	Tag(ctx context.Context, text string) ([]model.Token, error)
}

// Func adapts a function to the Tagger interface
type Func func(ctx context.Context, text string) ([]model.Token, error)

// Name returns "func"
func (f Func) Name() string {
	return "func"
}

// Tag calls f(ctx, text)
func (f Func) Tag(ctx context.Context, text string) ([]model.Token, error) {
	return f(ctx, text)
}

const systemPrompt = "You are a named-entity tagger for short biographical claims. You answer with JSON only."

// BuildPrompt constructs the tagging prompt for model-backed taggers
func BuildPrompt(text string) string {
	return fmt.Sprintf(`Tag the named entities in the text below.

RULES:
1. Return one entry per word, in the order the words appear.
2. Use type PERSON for words of a person's name, LOCATION for words of a place name, DATE for words of a date.
3. Skip every other word.
4. Copy each word exactly as written, keeping its case and inflection. Do not translate or normalize.

Respond with a JSON object of the form:
{"entities": [{"text": "<word>", "type": "PERSON|LOCATION|DATE"}]}

Text:
%s`, text)
}

type taggedEntities struct {
	Entities []struct {
		Text string `json:"text"`
		Type string `json:"type"`
	} `json:"entities"`
}

// ParseResponse decodes a model response produced for BuildPrompt
func ParseResponse(content string) ([]model.Token, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var parsed taggedEntities
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}

	tokens := make([]model.Token, 0, len(parsed.Entities))
	for _, e := range parsed.Entities {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		tokens = append(tokens, model.Token{
			Text: text,
			Type: model.ParseEntityType(strings.ToUpper(strings.TrimSpace(e.Type))),
		})
	}
	return tokens, nil
}
