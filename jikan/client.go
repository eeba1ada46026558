// Package jikan is the read-only client of the Jikan anime metadata service.
package jikan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/log"
	"github.com/animecritique/critique/network"
	"github.com/animecritique/critique/outcome"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

// DefaultPageSize is the limit sent with list requests.
const DefaultPageSize = 25

// ErrMissingData is returned for a 2xx anime reply without an anime in it.
var ErrMissingData = errors.New("malformed response: no anime in data")

// Options configures a Client.
type Options struct {
	// BaseURL defaults to jikan.url.
	BaseURL string

	// HTTPClient defaults to network.Metadata().
	HTTPClient *http.Client

	// RateLimit is requests per second; zero or less disables limiting.
	RateLimit float64

	// Cache, when set, serves and stores successful responses.
	Cache *Cache
}

// Client is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	cache   *Cache
}

// New returns a client for the service at opts.BaseURL.
func New(opts Options) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = viper.GetString(key.JikanURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("jikan url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("jikan url: %q is not absolute", baseURL)
	}

	c := &Client{base: base, http: opts.HTTPClient, cache: opts.Cache}
	if c.http == nil {
		c.http = network.Metadata()
	}
	if opts.RateLimit > 0 {
		burst := int(opts.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return c, nil
}

// Default returns a client configured from jikan.* settings.
func Default() (*Client, error) {
	opts := Options{
		BaseURL:   viper.GetString(key.JikanURL),
		RateLimit: viper.GetFloat64(key.JikanRateLimit),
	}
	if viper.GetBool(key.JikanCache) {
		opts.Cache = DefaultCache()
	}
	return New(opts)
}

// errorBody is what Jikan sends with non-2xx replies.
type errorBody struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// get fetches path into a T. Non-2xx replies are declines; the service is external and its refusals
// (not found, rate limited, upstream down) carry a readable message.
func get[T any](ctx context.Context, c *Client, op, path string, query url.Values) outcome.Outcome[T] {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return outcome.Failed[T](op, err)
		}
	}

	u := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return outcome.Failed[T](op, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warnf("jikan %s: %s", op, err)
		return outcome.Failed[T](op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcome.Failed[T](op, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body errorBody
		_ = json.Unmarshal(raw, &body)

		message := body.Message
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}

		log.Infof("jikan %s declined: %s", op, message)
		return outcome.Declined[T](message, nil)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		err = fmt.Errorf("malformed response: %w", err)
		log.Warnf("jikan %s: %s", op, err)
		return outcome.Failed[T](op, err)
	}

	return outcome.Ok(value)
}
