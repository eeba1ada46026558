// Package network configures the HTTP transports used by the two backends.
package network

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/log"
	"github.com/spf13/viper"
)

// Options configures one transport.
type Options struct {
	// Name tags log lines, e.g. "backend" or "jikan".
	Name string

	// Timeout bounds each phase separately: connect, writing the request, waiting for the response.
	// Zero leaves the net/http defaults in place.
	Timeout time.Duration

	// Verbose logs every request and response body at debug level.
	Verbose bool
}

// New builds an independent client. Clients built by New share no state.
func New(opts Options) *http.Client {
	return &http.Client{
		// three phases, each bounded by Timeout
		Timeout: 3 * opts.Timeout,
		Transport: &transport{
			name:    opts.Name,
			verbose: opts.Verbose,
			next:    newTransport(opts.Timeout),
		},
	}
}

// newTransport clones the default transport with per-phase limits.
func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second

	if timeout > 0 {
		t.DialContext = (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		t.TLSHandshakeTimeout = timeout
		t.ResponseHeaderTimeout = timeout
		t.ExpectContinueTimeout = timeout
	}

	return t
}

var (
	primaryOnce sync.Once
	primary     *http.Client

	metadataOnce sync.Once
	metadata     *http.Client
)

// Primary is the process-wide client for the review backend, built on first use from backend.* settings.
func Primary() *http.Client {
	primaryOnce.Do(func() {
		primary = New(Options{
			Name:    "backend",
			Timeout: seconds(key.BackendTimeout),
			Verbose: verbose(),
		})
	})
	return primary
}

// Metadata is the process-wide client for Jikan, built on first use from jikan.* settings.
func Metadata() *http.Client {
	metadataOnce.Do(func() {
		metadata = New(Options{
			Name:    "jikan",
			Timeout: seconds(key.JikanTimeout),
			Verbose: verbose(),
		})
	})
	return metadata
}

// verbose is network.verbose, which only takes effect when logs are written.
func verbose() bool {
	return viper.GetBool(key.NetworkVerbose) && log.Enabled()
}

func seconds(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Second
}
