// Package backend is the typed client of the review backend: accounts, reviews, favorites, watchlist and its anime listings.
//
// Every operation returns an outcome.Outcome. A response with success=false is a decline,
// whatever its HTTP status; anything that cannot be read as an envelope is a transport failure.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/log"
	"github.com/animecritique/critique/model"
	"github.com/animecritique/critique/network"
	"github.com/animecritique/critique/outcome"
	"github.com/spf13/viper"
)

// Client talks to one review backend. It holds no mutable state and is safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a client for the backend rooted at baseURL.
// A nil httpClient uses network.Primary().
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url: %q is not absolute", baseURL)
	}

	if httpClient == nil {
		httpClient = network.Primary()
	}

	return &Client{base: base, http: httpClient}, nil
}

// Default returns a client configured from backend.url.
func Default() (*Client, error) {
	return New(viper.GetString(key.BackendURL), nil)
}

// BaseURL is the root every route is resolved against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// payload says what a successful envelope must carry in data.
type payload int

const (
	// payloadOne requires data.
	payloadOne payload = iota
	// payloadList treats missing data as an empty list.
	payloadList
	// payloadNone ignores data.
	payloadNone
)

type call struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	payload payload
}

// send performs a call and classifies the reply.
func send[T any](ctx context.Context, c *Client, cl call) outcome.Outcome[T] {
	o, _ := exchange[T](ctx, c, cl)
	return o
}

// exchange is send that also hands back the envelope of ok outcomes.
func exchange[T any](ctx context.Context, c *Client, cl call) (outcome.Outcome[T], *model.Envelope) {
	raw, status, err := c.roundTrip(ctx, cl)
	if err != nil {
		log.Warnf("backend %s: %s", cl.op, err)
		return outcome.Failed[T](cl.op, err), nil
	}

	env, err := decodeEnvelope(raw)
	if err != nil {
		if status < 200 || status > 299 {
			err = &StatusError{Code: status, Cause: err}
		}
		log.Warnf("backend %s: %s", cl.op, err)
		return outcome.Failed[T](cl.op, err), nil
	}

	if !*env.Success {
		log.Infof("backend %s declined: %s", cl.op, env.Message)
		return outcome.Declined[T](env.Message, env.Errors), nil
	}

	var value T
	if cl.payload != payloadNone {
		if !env.HasData() {
			if cl.payload == payloadOne {
				log.Warnf("backend %s: %s", cl.op, ErrMissingData)
				return outcome.Failed[T](cl.op, ErrMissingData), nil
			}
		} else if err := json.Unmarshal(env.Data, &value); err != nil {
			err = fmt.Errorf("decode data: %w", err)
			log.Warnf("backend %s: %s", cl.op, err)
			return outcome.Failed[T](cl.op, err), nil
		}
	}

	return outcome.Ok(value).WithMessage(env.Message), env
}

func (c *Client) roundTrip(ctx context.Context, cl call) ([]byte, int, error) {
	u := c.base.ResolveReference(&url.URL{Path: cl.path})
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), body)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	return raw, resp.StatusCode, nil
}

func itoa(n int) string {
	return fmt.Sprint(n)
}
