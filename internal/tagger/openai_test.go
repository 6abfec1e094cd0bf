package tagger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/corroborate/internal/model"
)

func TestOpenAI_Tag_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
			t.Errorf("expected JSON object response format, got %+v", req.ResponseFormat)
		}

		resp := openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: `{"entities":[{"text":"Иванов","type":"PERSON"},{"text":"Москве","type":"LOCATION"}]}`,
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	tg, err := NewOpenAI(model.TaggerConfig{APIKey: "test-key", BaseURL: server.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Failed to create tagger: %v", err)
	}

	tokens, err := tg.Tag(context.Background(), "Иванов родился в Москве")
	if err != nil {
		t.Fatalf("Tag failed: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Type != model.EntityPerson || tokens[1].Text != "Москве" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
}

func TestOpenAI_Tag_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	tg, err := NewOpenAI(model.TaggerConfig{APIKey: "bad-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create tagger: %v", err)
	}

	if _, err := tg.Tag(context.Background(), "Иванов"); err == nil {
		t.Error("expected error for API failure")
	}
}

func TestOpenAI_Tag_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{ID: "chatcmpl-empty"})
	}))
	defer server.Close()

	tg, err := NewOpenAI(model.TaggerConfig{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("Failed to create tagger: %v", err)
	}

	if _, err := tg.Tag(context.Background(), "Иванов"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestNewOpenAI_Defaults(t *testing.T) {
	tg, err := NewOpenAI(model.TaggerConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewOpenAI failed: %v", err)
	}
	if tg.model != openai.GPT4oMini {
		t.Errorf("expected default model %s, got %s", openai.GPT4oMini, tg.model)
	}
	if tg.timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", tg.timeout)
	}
}
