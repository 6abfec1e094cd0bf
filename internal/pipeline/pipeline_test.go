package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/corroborate/internal/model"
)

// knowledgeServer answers every query with rows for names found in the REGEX filter
func knowledgeServer(t *testing.T, rows map[string]string) (*httptest.Server, *[]string) {
	t.Helper()

	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/sparql-results+json")

		for name, bindings := range rows {
			if strings.Contains(q, `REGEX(?name, "`+name+`", "i")`) {
				seen = append(seen, name)
				_, _ = fmt.Fprintf(w, `{"head":{"vars":["name","birthDate","birthPlace"]},"results":{"bindings":[%s]}}`, bindings)
				return
			}
		}
		seen = append(seen, "?")
		_, _ = fmt.Fprint(w, `{"head":{"vars":["name"]},"results":{"bindings":[]}}`)
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func testConfig(endpoint string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Knowledge.Endpoint = endpoint
	cfg.Knowledge.Timeout = 5 * time.Second
	return cfg
}

const kovalevskyRow = `{
  "name": {"type": "literal", "xml:lang": "ru", "value": "Владимир Онуфриевич Ковалевский"},
  "birthDate": {"type": "typed-literal", "value": "1842-08-14"},
  "birthPlace": {"type": "literal", "xml:lang": "ru", "value": "Украина"}
}`

func TestPipeline_Verify_ReferenceSentence(t *testing.T) {
	server, seen := knowledgeServer(t, map[string]string{
		"Ковалевский": kovalevskyRow,
	})

	p, err := NewPipeline(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	v, err := p.Verify(context.Background(), "Владимир Ковалевский родился на Украине")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !v.Supported {
		t.Errorf("expected claim to be corroborated, got %+v", v)
	}
	if v.Queries != 2 {
		t.Errorf("expected both names queried, got %d", v.Queries)
	}
	if strings.Join(*seen, ",") != "Ковалевский,?" {
		t.Errorf("expected last name queried first, got %v", *seen)
	}
	if v.Endpoint != server.URL {
		t.Errorf("unexpected endpoint %s", v.Endpoint)
	}
	if v.Claim != "Владимир Ковалевский родился на Украине" {
		t.Errorf("claim not recorded: %q", v.Claim)
	}
}

func TestPipeline_Verify_WrongDate(t *testing.T) {
	server, _ := knowledgeServer(t, map[string]string{"Ковалевский": kovalevskyRow})

	p, err := NewPipeline(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	v, err := p.Verify(context.Background(), "Владимир Ковалевский родился 14.08.1843 на Украине")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if v.Supported || v.Reason != model.ReasonNoMatch {
		t.Errorf("expected no_match, got %+v", v)
	}
	if v.Fact.BirthDate == nil || v.Fact.BirthDate.Raw != "14.08.1843" {
		t.Errorf("expected extracted date, got %+v", v.Fact.BirthDate)
	}
}

func TestPipeline_Verify_NothingFound(t *testing.T) {
	server, _ := knowledgeServer(t, nil)

	p, err := NewPipeline(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	v, err := p.Verify(context.Background(), "Иван Иванов родился в Москве")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if v.Supported || v.Reason != model.ReasonKnowledgeNotFound {
		t.Errorf("expected knowledge_not_found, got %+v", v)
	}
}

func TestPipeline_Verify_EndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "SPARQL compiler error", http.StatusBadRequest)
	}))
	defer server.Close()

	p, err := NewPipeline(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	if _, err := p.Verify(context.Background(), "Иван Иванов родился в Москве"); err == nil {
		t.Error("expected endpoint error to propagate")
	}
}

func TestPipeline_UnknownBackends(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Tagger.Provider = "spacy"
	if _, err := NewPipeline(cfg, nil); err == nil {
		t.Error("expected error for unknown tagger provider")
	}

	cfg = model.DefaultConfig()
	cfg.Normalizer.Backend = "pymorphy"
	if _, err := NewPipeline(cfg, nil); err == nil {
		t.Error("expected error for unknown normalizer backend")
	}
}

func TestPipeline_Queries(t *testing.T) {
	p, err := NewPipeline(model.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	queries := p.Queries(&model.ExtractedFact{Names: []string{"Владимир", "Ковалевский"}})
	if len(queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(queries))
	}
	if !strings.Contains(queries[0], `"Ковалевский"`) || !strings.Contains(queries[1], `"Владимир"`) {
		t.Error("expected queries in reverse name order")
	}
	if p.Endpoint() != model.DefaultEndpoint {
		t.Errorf("unexpected endpoint %s", p.Endpoint())
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "verdict.json")
	v := &model.Verdict{Supported: true, Reason: model.ReasonMatched, Fact: model.ExtractedFact{Names: []string{"Иванов"}}}

	if err := RenderJSON(v, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got model.Verdict
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !got.Supported || got.Fact.Names[0] != "Иванов" {
		t.Errorf("unexpected round trip %+v", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, &model.Verdict{
		Claim:      "Иван Иванов родился в Москве",
		Fact:       model.ExtractedFact{Names: []string{"Иван", "Иванов"}, BirthPlaces: []string{"москва"}},
		Supported:  true,
		Reason:     model.ReasonMatched,
		Queries:    2,
		Candidates: 3,
		Match:      &model.CandidateRecord{Name: "Иван Иванов", BirthPlaceNormalized: "москва"},
	})

	out := buf.String()
	for _, want := range []string{"✓ CORROBORATED (matched)", "Names:       Иван, Иванов", "Birth date:  -", "Matched:     Иван Иванов, -, москва"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
