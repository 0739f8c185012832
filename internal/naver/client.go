// Package naver provides a scraping client for domestic stock prices on Naver Finance.
package naver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://finance.naver.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
	DefaultCacheTTL  = 60 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// ErrUnresolved is returned when no price could be obtained for a symbol.
var ErrUnresolved = errors.New("price unresolved")

var (
	codePattern  = regexp.MustCompile(`^\d{6}$`)
	pricePattern = regexp.MustCompile(`(?s)<p class="no_today">.*?<span class="blind">([\d,]+)</span>`)
)

type cachedPrice struct {
	price   float64
	fetched time.Time
}

// Client scrapes the current price of 6-digit domestic codes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
	ttl        time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedPrice
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log.With().Str("client", "naver").Logger()
	}
}

// WithRateLimit sets the rate limit. Values below 1 fall back to DefaultRateLimit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond < 1 {
			requestsPerSecond = DefaultRateLimit
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCacheTTL sets how long a scraped price is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		c.ttl = ttl
	}
}

// NewClient creates a new Naver Finance client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:        zerolog.Nop(),
		ttl:        DefaultCacheTTL,
		now:        time.Now,
		cache:      make(map[string]cachedPrice),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NormalizeCode strips a trailing .KS or .KQ and reports whether the rest is a 6-digit code.
func NormalizeCode(symbol string) (string, bool) {
	code := strings.TrimSpace(symbol)
	if s, ok := strings.CutSuffix(code, ".KS"); ok {
		code = s
	} else if s, ok := strings.CutSuffix(code, ".KQ"); ok {
		code = s
	}
	return code, codePattern.MatchString(code)
}

// Price returns the current price of a domestic symbol.
// Every failure, including a symbol that is not a domestic code, is reported as ErrUnresolved.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	code, ok := NormalizeCode(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a 6-digit code", ErrUnresolved, symbol)
	}

	if price, ok := c.cached(code); ok {
		return price, nil
	}

	price, err := c.fetch(ctx, code)
	if err != nil {
		c.log.Warn().Err(err).Str("code", code).Msg("Naver price fetch failed")
		return 0, fmt.Errorf("%w: %w", ErrUnresolved, err)
	}

	if c.ttl > 0 {
		c.mu.Lock()
		c.cache[code] = cachedPrice{price: price, fetched: c.now()}
		c.mu.Unlock()
	}

	return price, nil
}

func (c *Client) cached(code string) (float64, bool) {
	if c.ttl <= 0 {
		return 0, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.cache[code]; ok && c.now().Sub(entry.fetched) < c.ttl {
		return entry.price, true
	}
	return 0, false
}

func (c *Client) fetch(ctx context.Context, code string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/item/main.nhn?code=%s", c.baseURL, url.QueryEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("code", code).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Naver request")

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("naver status %d for code %s", resp.StatusCode, code)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	return parsePrice(body)
}

// parsePrice extracts the first price token of the quote block.
func parsePrice(body []byte) (float64, error) {
	match := pricePattern.FindSubmatch(body)
	if match == nil {
		return 0, errors.New("price pattern not found")
	}

	value, err := strconv.Atoi(strings.ReplaceAll(string(match[1]), ",", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", match[1], err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("non-positive price %d", value)
	}
	return float64(value), nil
}
