// Package sparql builds birth-record queries, runs them against a SPARQL 1.1
// endpoint and maps result rows into candidate records.
package sparql

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultLanguage is the language tag names and place labels are filtered to
const DefaultLanguage = "ru"

// Variables requested by every query. Only name, birthDate and birthPlace are
// read back; the rest are kept in the projection for endpoint compatibility.
var Variables = []string{"person", "name", "birthDate", "birthPlace", "nationality", "profession", "education"}

var languageTagRe = regexp.MustCompile(`^(\*|[A-Za-z]{1,8}(-[A-Za-z0-9]{1,8})*)$`)

const queryTemplate = `PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
PREFIX foaf: <http://xmlns.com/foaf/0.1/>
PREFIX dbo: <http://dbpedia.org/ontology/>
SELECT %s
WHERE {
    ?person rdf:type dbo:Person ;
            foaf:name ?name ;
            dbo:birthDate ?birthDate .
    OPTIONAL {
        ?person dbo:birthPlace ?birthPlace_resource .
        ?birthPlace_resource rdfs:label ?birthPlace .
        FILTER (LANGMATCHES(LANG(?birthPlace), "%s"))
    }
    FILTER (LANGMATCHES(LANG(?name), "%s"))
    FILTER (REGEX(?name, "%s", "i"))
}`

// Builder renders one query per name variant
type Builder struct {
	language string
	limit    int
}

// NewBuilder creates a query builder. An invalid language tag falls back to
// DefaultLanguage; limit <= 0 means no LIMIT clause.
func NewBuilder(language string, limit int) *Builder {
	if !languageTagRe.MatchString(language) {
		language = DefaultLanguage
	}
	if limit < 0 {
		limit = 0
	}
	return &Builder{language: language, limit: limit}
}

// Language returns the language tag used in the filters
func (b *Builder) Language() string {
	return b.language
}

// Build returns the query matching candidates whose name contains name,
// case-insensitively
func (b *Builder) Build(name string) string {
	vars := make([]string, len(Variables))
	for i, v := range Variables {
		vars[i] = "?" + v
	}

	q := fmt.Sprintf(queryTemplate,
		strings.Join(vars, " "),
		b.language,
		b.language,
		EscapeRegexLiteral(name),
	)
	if b.limit > 0 {
		q += fmt.Sprintf("\nLIMIT %d", b.limit)
	}
	return q
}

// Plan returns the order in which name variants are queried: last detected first
func Plan(names []string) []string {
	plan := make([]string, len(names))
	for i, n := range names {
		plan[len(names)-1-i] = n
	}
	return plan
}

var literalReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// EscapeRegexLiteral quotes s so it matches literally inside a SPARQL REGEX
// string argument
func EscapeRegexLiteral(s string) string {
	return literalReplacer.Replace(regexp.QuoteMeta(s))
}
