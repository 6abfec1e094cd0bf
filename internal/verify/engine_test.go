package verify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/corroborate/internal/dates"
	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/sparql"
)

// fakeRunner answers queries by the name found in the REGEX filter
type fakeRunner struct {
	byName  map[string][]model.CandidateRecord
	err     error
	queried []string
}

func (f *fakeRunner) Run(ctx context.Context, query string) ([]model.CandidateRecord, error) {
	for name, records := range f.byName {
		if strings.Contains(query, `REGEX(?name, "`+name+`", "i")`) {
			f.queried = append(f.queried, name)
			return records, nil
		}
	}
	f.queried = append(f.queried, "?")
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

func newEngine(r Runner) *Engine {
	return NewEngine(sparql.NewBuilder("ru", 0), r, dates.NewRussian())
}

func birth(y int, m time.Month, d int) *model.BirthDate {
	return &model.BirthDate{Raw: "x", Parsed: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestVerify_PositiveWithoutDate(t *testing.T) {
	runner := &fakeRunner{byName: map[string][]model.CandidateRecord{
		"Иванов": {{Name: "Иван Иванов", BirthDateRaw: "", BirthPlaceNormalized: "москва"}},
	}}
	fact := &model.ExtractedFact{Names: []string{"Иванов"}, BirthPlaces: []string{"москва"}}

	ok, err := newEngine(runner).Verify(context.Background(), fact)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Error("expected claim to be corroborated")
	}
}

func TestVerify_PlaceMismatch(t *testing.T) {
	runner := &fakeRunner{byName: map[string][]model.CandidateRecord{
		"Иванов": {{Name: "Иван Иванов", BirthPlaceNormalized: "казань"}},
	}}
	fact := &model.ExtractedFact{Names: []string{"Иванов"}, BirthPlaces: []string{"москва"}}

	v, err := newEngine(runner).Evaluate(context.Background(), fact)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Supported {
		t.Error("expected no corroboration")
	}
	if v.Reason != model.ReasonNoMatch {
		t.Errorf("expected no_match, got %s", v.Reason)
	}
	if v.Candidates != 1 || v.Match != nil {
		t.Errorf("unexpected verdict %+v", v)
	}
}

func TestVerify_DateMismatch(t *testing.T) {
	runner := &fakeRunner{byName: map[string][]model.CandidateRecord{
		"Иванов": {{Name: "Иван Иванов", BirthDateRaw: "1991-05-05", BirthPlaceNormalized: "москва"}},
	}}
	fact := &model.ExtractedFact{
		Names:       []string{"Иванов"},
		BirthDate:   birth(1990, time.May, 5),
		BirthPlaces: []string{"москва"},
	}

	ok, err := newEngine(runner).Verify(context.Background(), fact)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Error("expected date mismatch to reject the candidate")
	}
}

func TestVerify_DateMatchSkipsEarlierCandidates(t *testing.T) {
	runner := &fakeRunner{byName: map[string][]model.CandidateRecord{
		"Иванов": {
			{Name: "Иван Иванов", BirthDateRaw: "not a date", BirthPlaceNormalized: "москва"},
			{Name: "Иван Иванов", BirthDateRaw: "1991-05-05", BirthPlaceNormalized: "москва"},
			{Name: "Пётр Иванов", BirthDateRaw: "1990-05-05", BirthPlaceNormalized: "москва ссср"},
		},
	}}
	fact := &model.ExtractedFact{
		Names:       []string{"Иванов"},
		BirthDate:   birth(1990, time.May, 5),
		BirthPlaces: []string{"москва"},
	}

	v, err := newEngine(runner).Evaluate(context.Background(), fact)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !v.Supported || v.Match == nil || v.Match.Name != "Пётр Иванов" {
		t.Errorf("expected third candidate to match, got %+v", v)
	}
	if v.Reason != model.ReasonMatched {
		t.Errorf("expected matched, got %s", v.Reason)
	}
}

func TestVerify_EmptyKnowledge(t *testing.T) {
	tests := []struct {
		name   string
		fact   *model.ExtractedFact
		reason model.VerdictReason
	}{
		{"single name", &model.ExtractedFact{Names: []string{"Никто"}}, model.ReasonKnowledgeNotFound},
		{"two names", &model.ExtractedFact{Names: []string{"Никто", "Нигде"}, BirthPlaces: []string{"москва"}}, model.ReasonKnowledgeNotFound},
		{"with date", &model.ExtractedFact{Names: []string{"Никто"}, BirthDate: birth(1990, time.May, 5)}, model.ReasonKnowledgeNotFound},
		{"no names", &model.ExtractedFact{}, model.ReasonNoNames},
		{"nil fact", nil, model.ReasonNoNames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			v, err := newEngine(runner).Evaluate(context.Background(), tt.fact)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if v.Supported {
				t.Error("expected false verdict")
			}
			if v.Reason != tt.reason {
				t.Errorf("expected %s, got %s", tt.reason, v.Reason)
			}
			if tt.fact != nil && v.Queries != len(tt.fact.Names) {
				t.Errorf("expected %d queries, got %d", len(tt.fact.Names), v.Queries)
			}
		})
	}
}

func TestVerify_QueriesInReverseOrderAndPoolsAll(t *testing.T) {
	runner := &fakeRunner{byName: map[string][]model.CandidateRecord{
		"Ковалевский": {{Name: "Александр Ковалевский", BirthPlaceNormalized: "украина"}},
		"Владимир":    {{Name: "Владимир Ковалевский", BirthPlaceNormalized: "украина"}},
	}}
	fact := &model.ExtractedFact{
		Names:       []string{"Владимир", "Ковалевский"},
		BirthPlaces: []string{"украина"},
	}

	v, err := newEngine(runner).Evaluate(context.Background(), fact)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if strings.Join(runner.queried, ",") != "Ковалевский,Владимир" {
		t.Errorf("expected reverse query order, got %v", runner.queried)
	}
	if v.Queries != 2 || v.Candidates != 2 {
		t.Errorf("expected both result sets pooled, got queries=%d candidates=%d", v.Queries, v.Candidates)
	}
	if !v.Supported || v.Match.Name != "Владимир Ковалевский" {
		t.Errorf("expected second pooled row to match, got %+v", v.Match)
	}
}

func TestVerify_QueryErrorAborts(t *testing.T) {
	runner := &fakeRunner{
		byName: map[string][]model.CandidateRecord{
			"Владимир": {{Name: "Владимир Ковалевский"}},
		},
		err: errors.New("connection refused"),
	}
	fact := &model.ExtractedFact{Names: []string{"Владимир", "Ковалевский"}}

	ok, err := newEngine(runner).Verify(context.Background(), fact)
	if err == nil {
		t.Fatal("expected transport error to abort verification")
	}
	if ok {
		t.Error("expected false on error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestVerify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	if _, err := newEngine(runner).Verify(ctx, &model.ExtractedFact{Names: []string{"Иванов"}}); err == nil {
		t.Error("expected context error")
	}
	if len(runner.queried) != 0 {
		t.Errorf("expected no queries, got %v", runner.queried)
	}
}

func TestMatch(t *testing.T) {
	parser := dates.NewRussian()
	candidate := model.CandidateRecord{
		Name:                 "Владимир Онуфриевич Ковалевский",
		BirthDateRaw:         "1842-08-14",
		BirthPlaceNormalized: "витебская губерния российская империя",
	}

	tests := []struct {
		name string
		fact model.ExtractedFact
		want bool
	}{
		{"all names contained", model.ExtractedFact{Names: []string{"Владимир", "Ковалевский"}}, true},
		{"one name missing", model.ExtractedFact{Names: []string{"Владимир", "Мечников"}}, false},
		{"case sensitive", model.ExtractedFact{Names: []string{"ковалевский"}}, false},
		{"substring of a word", model.ExtractedFact{Names: []string{"Ковал"}}, true},
		{"date equal", model.ExtractedFact{BirthDate: birth(1842, time.August, 14)}, true},
		{"date differs", model.ExtractedFact{BirthDate: birth(1842, time.August, 15)}, false},
		{"place contained", model.ExtractedFact{BirthPlaces: []string{"витебская", "губерния"}}, true},
		{"place missing", model.ExtractedFact{BirthPlaces: []string{"украина"}}, false},
		{"empty fact", model.ExtractedFact{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(&tt.fact, candidate, parser); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatch_UnparseableCandidateDate(t *testing.T) {
	fact := &model.ExtractedFact{BirthDate: birth(1990, time.May, 5)}

	if Match(fact, model.CandidateRecord{BirthDateRaw: ""}, dates.NewRussian()) {
		t.Error("empty candidate date must fail the date check")
	}
	if !Match(&model.ExtractedFact{}, model.CandidateRecord{BirthDateRaw: "garbage"}, dates.NewRussian()) {
		t.Error("date check must be skipped when the fact has no date")
	}
}

func TestEvaluate_RecordsEndpointAndTime(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e := newEngine(&fakeRunner{}).WithEndpoint("http://localhost/sparql")
	e.now = func() time.Time { return fixed }

	v, err := e.Evaluate(context.Background(), &model.ExtractedFact{Names: []string{"X"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if v.Endpoint != "http://localhost/sparql" || !v.CheckedAt.Equal(fixed) {
		t.Errorf("unexpected verdict metadata %+v", v)
	}
}
