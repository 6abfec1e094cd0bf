package lemma

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var builtinDictionary []byte

// Dictionary is a read-only table of word forms to lemmas.
// Words the table does not know normalize to their lower-cased form.
type Dictionary struct {
	forms map[string]string
}

// NewDictionary builds a dictionary from lemma -> forms entries
func NewDictionary(entries map[string][]string) *Dictionary {
	d := &Dictionary{forms: make(map[string]string)}
	d.add(entries)
	return d
}

func (d *Dictionary) add(entries map[string][]string) {
	for lemma, forms := range entries {
		lemma = fold(lemma)
		if lemma == "" {
			continue
		}
		d.forms[lemma] = lemma
		for _, form := range forms {
			if f := fold(form); f != "" {
				d.forms[f] = lemma
			}
		}
	}
}

// LoadDictionary parses a YAML lemma table
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	var entries map[string][]string
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	return NewDictionary(entries), nil
}

// LoadDictionaryFile parses a YAML lemma table from disk and merges it over
// the built-in table
func LoadDictionaryFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	extra, err := LoadDictionary(f)
	if err != nil {
		return nil, err
	}

	base, err := Default()
	if err != nil {
		return nil, err
	}
	return base.Merge(extra), nil
}

// Lemma returns the dictionary form of word
func (d *Dictionary) Lemma(word string) string {
	key := fold(word)
	if key == "" {
		return strings.ToLower(word)
	}
	if lemma, ok := d.forms[key]; ok {
		return lemma
	}
	return key
}

// Lookup returns the lemma of word only when the table knows it
func (d *Dictionary) Lookup(word string) (string, bool) {
	lemma, ok := d.forms[fold(word)]
	return lemma, ok
}

// Len returns the number of known word forms, lemmas included
func (d *Dictionary) Len() int {
	return len(d.forms)
}

// Merge returns a new dictionary with other's forms layered over d's
func (d *Dictionary) Merge(other *Dictionary) *Dictionary {
	merged := &Dictionary{forms: make(map[string]string, len(d.forms)+len(other.forms))}
	for k, v := range d.forms {
		merged.forms[k] = v
	}
	for k, v := range other.forms {
		merged.forms[k] = v
	}
	return merged
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
	defaultErr  error
	defaultMu   sync.Mutex
)

// Default returns the process-wide built-in dictionary, loading it on first use
func Default() (*Dictionary, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultOnce.Do(func() {
		defaultDict, defaultErr = LoadDictionary(strings.NewReader(string(builtinDictionary)))
	})
	return defaultDict, defaultErr
}

// Reset drops the process-wide dictionary so the next Default call reloads it
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultOnce = sync.Once{}
	defaultDict = nil
	defaultErr = nil
}
