package model

import "time"

// EntityType classifies a tagged token
type EntityType string

const (
	EntityPerson   EntityType = "PERSON"
	EntityLocation EntityType = "LOCATION"
	EntityDate     EntityType = "DATE"
	EntityOther    EntityType = "OTHER"
)

// ParseEntityType maps tagger labels (including short PER/LOC/GPE labels) to an EntityType
func ParseEntityType(label string) EntityType {
	switch label {
	case "PERSON", "PER", "person", "per":
		return EntityPerson
	case "LOCATION", "LOC", "GPE", "location", "loc", "gpe":
		return EntityLocation
	case "DATE", "date":
		return EntityDate
	default:
		return EntityOther
	}
}

// Token is one tagged span of the input text
type Token struct {
	Text string     `json:"text"`
	Type EntityType `json:"type"`
}

// BirthDate is a date substring found in the claim together with its parsed value
type BirthDate struct {
	Raw    string    `json:"raw"`    // Substring as it appeared in the text
	Parsed time.Time `json:"parsed"` // Calendar date at UTC midnight
}

// ExtractedFact is the structured form of a birth claim.
// It is built once by the fact extractor and not modified afterwards.
type ExtractedFact struct {
	Names       []string   `json:"names"`                // PERSON tokens in order of appearance
	BirthDate   *BirthDate `json:"birth_date,omitempty"` // nil when no parseable date was found
	BirthPlaces []string   `json:"birth_places"`         // Lemmatized LOCATION tokens
}

// HasDate reports whether the fact carries a date constraint
func (f *ExtractedFact) HasDate() bool {
	return f.BirthDate != nil && !f.BirthDate.Parsed.IsZero()
}

// CandidateRecord is one biographical row returned by the knowledge base
type CandidateRecord struct {
	Name                 string `json:"name"`
	BirthDateRaw         string `json:"birth_date"`
	BirthPlaceNormalized string `json:"birth_place"`
}
