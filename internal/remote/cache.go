package remote

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Source tells where a fetched value came from.
type Source int

// Fetch outcomes.
const (
	SourceNetwork Source = iota
	SourceCache
	SourceFallback
)

// String returns the lowercase name of the source.
func (s Source) String() string {
	switch s {
	case SourceNetwork:
		return "network"
	case SourceCache:
		return "cache"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Fetch. Err carries the last attempt error
// when Source is SourceFallback and is for diagnostics only.
type Result[T any] struct {
	Value    T
	Source   Source
	Attempts int
	Err      error
}

// Cache fetches catalog endpoints through a session Store.
// Concurrent fetches of the same endpoint are not coalesced; each may reach
// the network and the first successful payload stored wins.
type Cache struct {
	baseURL     string
	userAgent   string
	maxAttempts int
	backoffStep time.Duration
	client      *http.Client
	timeout     *time.Duration
	store       Store
	logger      *log.Logger

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient replaces the default no-reuse HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cache) { c.client = client }
}

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithUserAgent sets the client identifier sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Cache) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxAttempts sets how many times a request is tried before falling back.
func WithMaxAttempts(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoffStep sets the linear backoff unit; attempt n waits n*step.
func WithBackoffStep(step time.Duration) Option {
	return func(c *Cache) {
		if step >= 0 {
			c.backoffStep = step
		}
	}
}

// WithRequestTimeout bounds each attempt. Zero means no timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = &d }
}

// New creates a Cache for the API rooted at baseURL. A nil store selects an
// in-memory store.
func New(baseURL string, store Store, opts ...Option) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Cache{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   types.DefaultUserAgent,
		maxAttempts: types.DefaultMaxAttempts,
		backoffStep: types.DefaultBackoffStep,
		client:      newHTTPClient(),
		store:       store,
		logger:      log.New(io.Discard, "", 0),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		client := *c.client
		client.Timeout = *c.timeout
		c.client = &client
	}
	return c
}

// NewFromConfig creates a Cache from a validated Config.
func NewFromConfig(cfg types.Config, store Store, logger *log.Logger) *Cache {
	opts := []Option{
		WithUserAgent(cfg.UserAgent),
		WithMaxAttempts(cfg.MaxAttempts),
		WithBackoffStep(cfg.BackoffStep),
		WithRequestTimeout(cfg.RequestTimeout),
	}
	if logger != nil {
		opts = append(opts, WithLogger(logger))
	}
	return New(cfg.APIBase, store, opts...)
}

// URL returns the absolute URL of an API path. Presentation code uses it to
// address images.
func (c *Cache) URL(path string) string {
	return c.baseURL + path
}

// newHTTPClient builds a client that opens a fresh HTTP/1.1 connection per
// request. An empty TLSNextProto map turns off HTTP/2 negotiation.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
			ForceAttemptHTTP2: false,
			TLSNextProto:      map[string]func(string, *tls.Conn) http.RoundTripper{},
		},
	}
}

// CacheKey derives the store key of an endpoint: every character outside
// [A-Za-z0-9] becomes an underscore.
func CacheKey(endpoint string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, endpoint)
}

// Fetch returns the decoded payload of endpoint. A stored payload is returned
// without touching the network. Otherwise the request is tried up to the
// configured number of attempts, waiting attempt*step between failures. On
// success the raw body is stored, replacing a stored payload that failed to
// decode; after the last failure fallback is
// returned as-is and nothing is stored. Fetch never fails.
func Fetch[T any](ctx context.Context, c *Cache, endpoint string, fallback T) Result[T] {
	key := CacheKey(endpoint)

	stale := false
	if raw, ok := c.load(key); ok {
		var v T
		err := json.Unmarshal(raw, &v)
		if err == nil {
			return Result[T]{Value: v, Source: SourceCache}
		}
		c.logger.Printf("cached payload for %s does not decode: %v", endpoint, err)
		stale = true
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		attempts = attempt

		body, err := c.get(ctx, endpoint)
		if err == nil {
			var v T
			err = json.Unmarshal(body, &v)
			if err == nil {
				c.save(key, body, stale)
				return Result[T]{Value: v, Source: SourceNetwork, Attempts: attempt}
			}
			err = fmt.Errorf("%w: %s: %w", types.ErrDecode, endpoint, err)
		}

		lastErr = err
		c.logger.Printf("attempt %d/%d failed for %s: %v", attempt, c.maxAttempts, endpoint, err)

		if attempt == c.maxAttempts {
			break
		}
		if err := c.sleep(ctx, c.backoffStep*time.Duration(attempt)); err != nil {
			lastErr = err
			break
		}
	}

	c.logger.Printf("using fallback for %s", endpoint)
	return Result[T]{Value: fallback, Source: SourceFallback, Attempts: attempts, Err: lastErr}
}

// get performs one request attempt and returns the body when it is a
// well-formed JSON document served with a 2xx status.
func (c *Cache) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", types.ErrTransport, err)
	}
	req.Close = true
	req.Header.Set("Connection", "close")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", types.ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", types.ErrTransport, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s", types.ErrDecode, endpoint)
	}
	return body, nil
}

func (c *Cache) load(key string) ([]byte, bool) {
	raw, ok, err := c.store.Load(key)
	if err != nil {
		c.logger.Printf("session store load %s: %v", key, err)
		return nil, false
	}
	return raw, ok
}

func (c *Cache) save(key string, body []byte, replace bool) {
	save := c.store.Save
	if replace {
		save = c.store.Replace
	}
	if err := save(key, body); err != nil {
		c.logger.Printf("session store save %s: %v", key, err)
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
