// Package geocode resolves US ZIP codes to (city, state) via the Google
// Geocoding API, with a static metro table as fallback.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client resolves a ZIP code to a city and state.
type Client interface {
	// ResolveZip resolves a single 5-digit ZIP code. A ZIP that no source
	// can resolve yields Matched=false, not an error.
	ResolveZip(ctx context.Context, zip string) (*Result, error)
}

// Result holds the resolution output for a ZIP code.
type Result struct {
	City      string
	StateName string // long form, e.g. "California"
	Source    string // "google" or "static"
	Matched   bool
}

// Option configures the resolver.
type Option func(*resolver)

// WithAPIKey enables the Google Geocoding API as the primary source.
func WithAPIKey(key string) Option {
	return func(g *resolver) {
		g.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client for Google requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *resolver) {
		g.httpClient = hc
	}
}

// WithTimeout bounds each Google request.
func WithTimeout(d time.Duration) Option {
	return func(g *resolver) {
		g.httpClient.Timeout = d
	}
}

// WithRateLimit sets the requests-per-second limit for Google calls.
func WithRateLimit(rps float64) Option {
	return func(g *resolver) {
		g.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

// WithCache enables a short-TTL sqlite result cache at the given path.
func WithCache(path string, ttl time.Duration) Option {
	return func(g *resolver) {
		g.cachePath = path
		g.cacheTTL = ttl
	}
}

// WithBaseURL overrides the Google endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(g *resolver) {
		g.baseURL = u
	}
}

type resolver struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	cachePath  string
	cacheTTL   time.Duration
	cache      *zipCache
}

// NewClient creates a ZIP resolution Client with the given options.
func NewClient(opts ...Option) Client {
	g := &resolver{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    googleGeocodeURL,
		limiter:    rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cachePath != "" {
		if c, err := openZipCache(g.cachePath, g.cacheTTL); err == nil {
			g.cache = c
		}
	}
	return g
}

// ResolveZip resolves a ZIP, trying the cache, then Google if configured,
// then the static metro table. No source matching is not an error.
func (g *resolver) ResolveZip(ctx context.Context, zip string) (*Result, error) {
	if g.cache != nil {
		if cached := g.cache.get(ctx, zip); cached != nil {
			return cached, nil
		}
	}

	if g.apiKey != "" {
		result, err := g.resolveGoogle(ctx, zip)
		if err == nil && result.Matched {
			g.store(ctx, zip, result)
			return result, nil
		}
	}

	if result := staticLookup(zip); result != nil {
		g.store(ctx, zip, result)
		return result, nil
	}

	return &Result{Matched: false}, nil
}

func (g *resolver) store(ctx context.Context, zip string, result *Result) {
	if g.cache != nil {
		g.cache.put(ctx, zip, result)
	}
}
