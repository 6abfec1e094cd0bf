package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/corroborate/internal/model"
)

// RenderJSON writes v as indented JSON to path, creating parent directories
func RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON to w
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderSummary prints a human-readable verdict
func RenderSummary(w io.Writer, v *model.Verdict) {
	mark := "✗"
	status := "NOT CORROBORATED"
	if v.Supported {
		mark = "✓"
		status = "CORROBORATED"
	}

	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", mark, status, v.Reason)
	if v.Claim != "" {
		_, _ = fmt.Fprintf(w, "  Claim:       %s\n", v.Claim)
	}
	_, _ = fmt.Fprintf(w, "  Names:       %s\n", orDash(strings.Join(v.Fact.Names, ", ")))
	if v.Fact.BirthDate != nil {
		_, _ = fmt.Fprintf(w, "  Birth date:  %s (%s)\n", v.Fact.BirthDate.Parsed.Format("2006-01-02"), v.Fact.BirthDate.Raw)
	} else {
		_, _ = fmt.Fprintf(w, "  Birth date:  -\n")
	}
	_, _ = fmt.Fprintf(w, "  Birth place: %s\n", orDash(strings.Join(v.Fact.BirthPlaces, ", ")))
	_, _ = fmt.Fprintf(w, "  Queries:     %d, candidates: %d\n", v.Queries, v.Candidates)

	if v.Match != nil {
		_, _ = fmt.Fprintf(w, "  Matched:     %s, %s, %s\n",
			v.Match.Name, orDash(v.Match.BirthDateRaw), orDash(v.Match.BirthPlaceNormalized))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
