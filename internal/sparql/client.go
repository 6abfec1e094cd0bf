package sparql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/corroborate/internal/model"
	"github.com/ppiankov/corroborate/internal/util"
)

// Binding is one result row: variable name to lexical value
type Binding map[string]string

// Querier runs a SPARQL SELECT query
type Querier interface {
	Query(ctx context.Context, query string) ([]Binding, error)
}

// RateLimiter throttles requests to an endpoint
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// ErrStatus matches every StatusError under errors.Is
var ErrStatus = errors.New("unexpected endpoint status")

// StatusError is returned when the endpoint answers with a non-2xx status,
// typically because it rejected the query
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status: %s", e.Status)
	}
	return fmt.Sprintf("unexpected status: %s: %s", e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// resultsDocument is the W3C SPARQL 1.1 Query Results JSON format
type resultsDocument struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]rdfTerm `json:"bindings"`
	} `json:"results"`
}

type rdfTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Client talks to a SPARQL endpoint over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    RateLimiter
}

// NewClient creates a client for cfg.Endpoint. limiter may be nil.
func NewClient(cfg model.KnowledgeConfig, limiter RateLimiter) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = model.DefaultEndpoint
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = model.DefaultUserAgent
	}

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 8_000_000
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		limiter:   limiter,
	}
}

// Endpoint returns the endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query runs a SELECT query and returns its rows. Unbound variables are
// absent from a row.
func (c *Client) Query(ctx context.Context, query string) ([]Binding, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	params := u.Query()
	params.Set("query", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/sparql-results+json, application/json;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       excerpt(string(body), 200),
		}
	}

	return decodeResults(body)
}

func decodeResults(body []byte) ([]Binding, error) {
	var doc resultsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}

	rows := make([]Binding, 0, len(doc.Results.Bindings))
	for _, raw := range doc.Results.Bindings {
		row := make(Binding, len(raw))
		for name, term := range raw {
			row[name] = term.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
