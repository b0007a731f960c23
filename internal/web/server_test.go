package web

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/averycrespi/calc-mcp/internal/config"
	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/averycrespi/calc-mcp/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithConfig(t, config.Default())
}

func newTestServerWithConfig(t *testing.T, cfg types.Config) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(cfg, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// newVisitor returns an HTTP client with its own cookie jar, i.e. its own calculator
func newVisitor(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func pressKeys(t *testing.T, client *http.Client, baseURL, body string) (int, []byte) {
	t.Helper()
	resp, err := client.Post(baseURL+"/api/press", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeState(t *testing.T, data []byte) results.CalculatorState {
	t.Helper()
	var state results.CalculatorState
	require.NoError(t, json.Unmarshal(data, &state), "body: %s", data)
	return state
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t)
	client := newVisitor(t)

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, page, `class="calculator"`)
	assert.Contains(t, page, `<div class="current-operand">0</div>`)
	assert.Contains(t, page, `<div class="previous-operand"></div>`)
	assert.Equal(t, 18, strings.Count(page, `<button type="button" class="btn `))
	assert.Contains(t, page, `class="btn btn-clear span-two" data-key="AC">AC</button>`)
	assert.Contains(t, page, `class="btn btn-delete" data-key="DEL">DEL</button>`)
	assert.Contains(t, page, `class="btn btn-equals span-two" data-key="=">=</button>`)
	assert.Contains(t, page, `data-key="÷">÷</button>`)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
}

func TestIndex_RendersSessionState(t *testing.T) {
	ts := newTestServer(t)
	client := newVisitor(t)

	status, _ := pressKeys(t, client, ts.URL, `{"keys": "12 ÷ 4"}`)
	require.Equal(t, http.StatusOK, status)

	resp, err := client.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `<div class="previous-operand">12 ÷</div>`)
	assert.Contains(t, string(body), `<div class="current-operand">4</div>`)
}

func TestPress(t *testing.T) {
	ts := newTestServer(t)
	client := newVisitor(t)

	for _, key := range []string{"1", "0", "+", "5"} {
		status, data := pressKeys(t, client, ts.URL, `{"key": "`+key+`"}`)
		require.Equal(t, http.StatusOK, status, string(data))
	}

	status, data := pressKeys(t, client, ts.URL, `{"key": "="}`)
	require.Equal(t, http.StatusOK, status)

	state := decodeState(t, data)
	assert.Equal(t, "15", state.Current)
	assert.Equal(t, "", state.Previous)
	assert.Equal(t, "", state.Operation)
	assert.True(t, state.Waiting)
	assert.Equal(t, results.Display{Previous: "", Current: "15"}, state.Display)
}

func TestPress_DivisionByZeroRecovers(t *testing.T) {
	ts := newTestServer(t)
	client := newVisitor(t)

	status, data := pressKeys(t, client, ts.URL, `{"keys": "10 ÷ 0 ="}`)
	require.Equal(t, http.StatusOK, status)
	state := decodeState(t, data)
	assert.Equal(t, "Error", state.Current)
	assert.True(t, state.Error)

	status, data = pressKeys(t, client, ts.URL, `{"key": "5"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "5", decodeState(t, data).Current)
}

func TestPress_BadRequests(t *testing.T) {
	ts := newTestServer(t)
	client := newVisitor(t)

	status, _ := pressKeys(t, client, ts.URL, `{"keys": "42"}`)
	require.Equal(t, http.StatusOK, status)

	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{name: "Unknown key", body: `{"key": "%"}`, contains: "unknown key"},
		{name: "Unknown key in sequence", body: `{"keys": "1 + sqrt"}`, contains: "unknown key"},
		{name: "Both fields", body: `{"key": "1", "keys": "2"}`, contains: "either key or keys"},
		{name: "Neither field", body: `{}`, contains: "must set key or keys"},
		{name: "Malformed JSON", body: `{"key":`, contains: "failed to decode"},
		{name: "Unknown field", body: `{"button": "1"}`, contains: "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := pressKeys(t, client, ts.URL, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)

			var errResult results.ErrorResult
			require.NoError(t, json.Unmarshal(data, &errResult))
			assert.Contains(t, errResult.Error, tt.contains)
		})
	}

	resp, err := client.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "42", decodeState(t, data).Current)
}

func TestClear(t *testing.T) {
	ts := newTestServer(t)
	client := newVisitor(t)

	status, _ := pressKeys(t, client, ts.URL, `{"keys": "5 + 3"}`)
	require.Equal(t, http.StatusOK, status)

	resp, err := client.Post(ts.URL+"/api/clear", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	state := decodeState(t, data)
	assert.Equal(t, "0", state.Current)
	assert.Equal(t, "", state.Previous)
	assert.False(t, state.Waiting)
}

func TestVisitorsAreIsolated(t *testing.T) {
	ts := newTestServer(t)
	alice := newVisitor(t)
	bob := newVisitor(t)

	_, aliceData := pressKeys(t, alice, ts.URL, `{"keys": "7"}`)
	_, bobData := pressKeys(t, bob, ts.URL, `{"keys": "9 9"}`)

	aliceState := decodeState(t, aliceData)
	bobState := decodeState(t, bobData)
	assert.Equal(t, "7", aliceState.Current)
	assert.Equal(t, "99", bobState.Current)
	assert.NotEqual(t, aliceState.SessionID, bobState.SessionID)
}

func TestUnknownSessionCookieStartsFreshSession(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/state", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	state := decodeState(t, data)
	assert.NotEqual(t, "forged", state.SessionID)
	assert.Equal(t, "0", state.Current)
}

func TestStatic(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/static/calculator.css", contentType: "text/css", contains: ".current-operand"},
		{path: "/static/calculator.js", contentType: "javascript", contains: "/api/press"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.contentType)
			assert.Contains(t, string(body), tt.contains)

			etag := resp.Header.Get("ETag")
			require.Regexp(t, `^"[0-9a-f]+"$`, etag)

			req, err := http.NewRequest(http.MethodGet, ts.URL+tt.path, nil)
			require.NoError(t, err)
			req.Header.Set("If-None-Match", etag)
			resp, err = http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusNotModified, resp.StatusCode)
		})
	}

	resp, err := http.Get(ts.URL + "/static/missing.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestEtagMatches(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected bool
	}{
		{name: "Exact", header: `"abc"`, expected: true},
		{name: "Weak", header: `W/"abc"`, expected: true},
		{name: "List", header: `"x", "abc"`, expected: true},
		{name: "Wildcard", header: `*`, expected: true},
		{name: "Mismatch", header: `"def"`, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, etagMatches(tt.header, `"abc"`))
		})
	}
}

func TestServeListenerShutsDownWithContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := NewServer(config.Default(), logger)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.ServeListener(ctx, ln)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestPress_EvictedVisitorStartsFreshSession(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSessions = 1
	ts := newTestServerWithConfig(t, cfg)
	alice := newVisitor(t)
	bob := newVisitor(t)

	status, body := pressKeys(t, alice, ts.URL, `{"keys": "12"}`)
	require.Equal(t, http.StatusOK, status, "body: %s", body)
	first := decodeState(t, body)

	status, body = pressKeys(t, bob, ts.URL, `{"key": "7"}`)
	require.Equal(t, http.StatusOK, status, "body: %s", body)

	status, body = pressKeys(t, alice, ts.URL, `{"key": "3"}`)
	require.Equal(t, http.StatusOK, status, "body: %s", body)
	state := decodeState(t, body)
	assert.Equal(t, "3", state.Current)
	assert.NotEqual(t, first.SessionID, state.SessionID)
}
