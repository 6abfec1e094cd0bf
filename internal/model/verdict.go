package model

import "time"

// VerdictReason explains how a verification ended
type VerdictReason string

const (
	ReasonMatched           VerdictReason = "matched"             // A candidate satisfied every check
	ReasonNoMatch           VerdictReason = "no_match"            // Candidates found, none matched
	ReasonKnowledgeNotFound VerdictReason = "knowledge_not_found" // Every query came back empty
	ReasonNoNames           VerdictReason = "no_names"            // Nothing to query for
)

// Verdict is the outcome of corroborating one claim
type Verdict struct {
	Claim      string           `json:"claim,omitempty"`
	Fact       ExtractedFact    `json:"fact"`
	Supported  bool             `json:"supported"`
	Reason     VerdictReason    `json:"reason"`
	Queries    int              `json:"queries"`           // Knowledge base queries issued
	Candidates int              `json:"candidates"`        // Size of the candidate pool
	Match      *CandidateRecord `json:"match,omitempty"`   // First candidate that passed
	CheckedAt  time.Time        `json:"checked_at"`
	Endpoint   string           `json:"endpoint,omitempty"`
}
