package model

import "time"

// DefaultEndpoint is the public DBpedia SPARQL service
const DefaultEndpoint = "https://dbpedia.org/sparql"

// DefaultUserAgent identifies corroborate to remote services
const DefaultUserAgent = "Corroborate/0.1 (+https://github.com/ppiankov/corroborate)"

// Config is the complete corroborate configuration
type Config struct {
	Knowledge   KnowledgeConfig   `yaml:"knowledge" mapstructure:"knowledge"`
	Tagger      TaggerConfig      `yaml:"tagger" mapstructure:"tagger"`
	Normalizer  NormalizerConfig  `yaml:"normalizer" mapstructure:"normalizer"`
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// KnowledgeConfig configures the SPARQL endpoint and the HTTP client talking to it
type KnowledgeConfig struct {
	Endpoint          string        `yaml:"endpoint" mapstructure:"endpoint"`
	Language          string        `yaml:"language" mapstructure:"language"` // Language tag for names and place labels
	Limit             int           `yaml:"limit" mapstructure:"limit"`       // Result LIMIT per query, 0 = none
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"` // Comma-separated hosts that bypass the proxy
}

// TaggerConfig selects and configures the entity tagger backend
type TaggerConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // rules, openai, ollama, anthropic
	Model     string        `yaml:"model,omitempty" mapstructure:"model"`
	BaseURL   string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey    string        `yaml:"-" mapstructure:"api_key"` // Never written to config files
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Gazetteer string        `yaml:"gazetteer,omitempty" mapstructure:"gazetteer"` // Extra place names for the rules tagger
}

// NormalizerConfig selects the lemmatizer backend
type NormalizerConfig struct {
	Backend    string        `yaml:"backend" mapstructure:"backend"`                  // hybrid, dictionary, snowball
	Dictionary string        `yaml:"dictionary,omitempty" mapstructure:"dictionary"` // Extra word forms merged into the built-in table
	CacheTTL   time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`              // 0 disables memoization
}

// ExtractConfig controls fact extraction
type ExtractConfig struct {
	// TaggerDates uses DATE tokens from the tagger before the regex fallback.
	TaggerDates bool `yaml:"tagger_dates" mapstructure:"tagger_dates"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls rendering and logging
type OutputConfig struct {
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Knowledge: KnowledgeConfig{
			Endpoint:          DefaultEndpoint,
			Language:          "ru",
			Limit:             0,
			Timeout:           30 * time.Second,
			UserAgent:         DefaultUserAgent,
			MaxBodyBytes:      8_000_000,
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Tagger: TaggerConfig{
			Provider: "rules",
			Timeout:  30 * time.Second,
		},
		Normalizer: NormalizerConfig{
			Backend:  "hybrid",
			CacheTTL: 10 * time.Minute,
		},
		Extract: ExtractConfig{
			TaggerDates: false,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			LogLevel: "warn",
		},
	}
}
