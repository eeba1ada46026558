package network

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/animecritique/critique/constant"
	"github.com/animecritique/critique/log"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id that ties a request to its log lines.
const RequestIDHeader = "X-Request-ID"

// maxLoggedBody caps how much of a body ends up in the log.
const maxLoggedBody = 4 << 10

type transport struct {
	name    string
	verbose bool
	next    http.RoundTripper
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(RequestIDHeader, id)
	}

	if !t.verbose {
		return t.next.RoundTrip(req)
	}

	entry := log.WithFields(map[string]any{
		"transport":  t.name,
		"request_id": id,
		"method":     req.Method,
		"url":        req.URL.String(),
	})

	if req.Body != nil && req.Body != http.NoBody {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		entry.Debugf("--> %s", truncate(body))
	} else {
		entry.Debug("-->")
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		entry.WithField("elapsed", elapsed).Debugf("<-- failed: %s", err)
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	entry.WithField("status", resp.StatusCode).
		WithField("elapsed", elapsed).
		Debugf("<-- %s", truncate(body))

	return resp, nil
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
