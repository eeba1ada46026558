package network

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/animecritique/critique/constant"
	"github.com/animecritique/critique/key"
	"github.com/animecritique/critique/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Seen-Agent", r.Header.Get("User-Agent"))
		w.Header().Set("X-Seen-Id", r.Header.Get(RequestIDHeader))
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewSetsHeaders(t *testing.T) {
	srv := echoServer(t)
	client := New(Options{Name: "test", Timeout: time.Second})

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, constant.UserAgent, resp.Header.Get("X-Seen-Agent"))
	assert.Len(t, resp.Header.Get("X-Seen-Id"), 36)
}

func TestNewKeepsCallerRequestID(t *testing.T) {
	srv := echoServer(t)
	client := New(Options{Name: "test"})

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "fixed")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "fixed", resp.Header.Get("X-Seen-Id"))
}

func TestVerbosePreservesBodies(t *testing.T) {
	srv := echoServer(t)
	client := New(Options{Name: "test", Timeout: time.Second, Verbose: true})

	payload := `{"usuario":"ana","senha":"secret"}`
	resp, err := client.Post(srv.URL, "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	client := New(Options{Name: "slow", Timeout: 50 * time.Millisecond})
	_, err := client.Get(srv.URL)
	assert.Error(t, err)
}

func TestSingletonsAreReusedAndIndependent(t *testing.T) {
	assert.Same(t, Primary(), Primary())
	assert.Same(t, Metadata(), Metadata())
	assert.NotSame(t, Primary(), Metadata())
	assert.NotSame(t, Primary().Transport, Metadata().Transport)
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", maxLoggedBody+10)
	assert.Equal(t, maxLoggedBody+3, len(truncate([]byte(long))))
	assert.Equal(t, "short", truncate([]byte("short")))
}

func TestVerboseNeedsLogs(t *testing.T) {
	viper.Set(key.NetworkVerbose, true)
	t.Cleanup(func() { viper.Set(key.NetworkVerbose, false) })

	viper.Set(key.LogsWrite, false)
	require.NoError(t, log.Setup())
	assert.False(t, verbose())
}
