package lemma

// Hybrid answers from the dictionary and stems every word the table does not
// know, so inflected forms outside the table still share one key.
type Hybrid struct {
	dict     *Dictionary
	fallback Normalizer
}

// NewHybrid combines a dictionary with a fallback normalizer, Snowball Russian
// when fallback is nil
func NewHybrid(dict *Dictionary, fallback Normalizer) *Hybrid {
	if fallback == nil {
		fallback = NewSnowball("russian")
	}
	return &Hybrid{dict: dict, fallback: fallback}
}

// Lemma returns the dictionary lemma of word, or its fallback form
func (h *Hybrid) Lemma(word string) string {
	if lemma, ok := h.dict.Lookup(word); ok {
		return lemma
	}
	return h.fallback.Lemma(word)
}
