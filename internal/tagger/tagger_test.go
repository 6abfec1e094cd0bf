package tagger

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/corroborate/internal/model"
)

func TestParseResponse(t *testing.T) {
	content := "```json\n" + `{"entities": [
		{"text": "Иван", "type": "PERSON"},
		{"text": "Иванов", "type": "per"},
		{"text": "Москве", "type": "LOC"},
		{"text": "1990", "type": "DATE"},
		{"text": " ", "type": "PERSON"},
		{"text": "завод", "type": "ORG"}
	]}` + "\n```"

	tokens, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse failed: %v", err)
	}

	want := []model.Token{
		{Text: "Иван", Type: model.EntityPerson},
		{Text: "Иванов", Type: model.EntityPerson},
		{Text: "Москве", Type: model.EntityLocation},
		{Text: "1990", Type: model.EntityDate},
		{Text: "завод", Type: model.EntityOther},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	if _, err := ParseResponse("not json"); err == nil {
		t.Error("expected error for malformed response")
	}
}

func TestBuildPrompt_ContainsText(t *testing.T) {
	prompt := BuildPrompt("Иван родился в Москве")
	if !strings.Contains(prompt, "Иван родился в Москве") {
		t.Error("expected prompt to contain the claim")
	}
	if !strings.Contains(prompt, `"entities"`) {
		t.Error("expected prompt to describe the response format")
	}
}

func TestNew(t *testing.T) {
	tg, err := New(model.TaggerConfig{Provider: "rules"}, nil)
	if err != nil || tg.Name() != "rules" {
		t.Fatalf("expected rules tagger, got %v, %v", tg, err)
	}

	if _, err := New(model.TaggerConfig{Provider: "openai"}, nil); err == nil {
		t.Error("expected error for openai without API key")
	}

	tg, err = New(model.TaggerConfig{Provider: "ollama", Model: "qwen2.5"}, nil)
	if err != nil || tg.Name() != "ollama" {
		t.Errorf("expected ollama tagger, got %v, %v", tg, err)
	}

	tg, err = New(model.TaggerConfig{Provider: "anthropic", APIKey: "test-key"}, nil)
	if err != nil || tg.Name() != "anthropic" {
		t.Errorf("expected anthropic tagger, got %v, %v", tg, err)
	}

	_, err = New(model.TaggerConfig{Provider: "spacy"}, nil)
	if !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}
