package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Anshulmehra001/BitFlow/core"
)

type fakeScript struct {
	Response core.TransportResponse
	Err      error
}

// fakeAdapter replays scripted responses in order and records every request
// it sees. Calls past the end of the script replay the last entry.
type fakeAdapter struct {
	Scripts  []fakeScript
	Requests []core.TransportRequest
}

func (f *fakeAdapter) Kind() string {
	return "fake"
}

func (f *fakeAdapter) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	f.Requests = append(f.Requests, req)
	if len(f.Scripts) == 0 {
		return core.TransportResponse{StatusCode: 200, Body: []byte(`{}`)}, nil
	}
	index := len(f.Requests) - 1
	if index >= len(f.Scripts) {
		index = len(f.Scripts) - 1
	}
	script := f.Scripts[index]
	return script.Response, script.Err
}

var _ core.TransportAdapter = (*fakeAdapter)(nil)

func testConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.APIKey = "sk_test_123"
	return cfg
}

func newTestClient(t *testing.T, adapter core.TransportAdapter) *Client {
	t.Helper()
	c, err := New(testConfig(), WithTransportAdapter(adapter))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func scriptJSON(status int, body string) fakeScript {
	return fakeScript{Response: core.TransportResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(body),
	}}
}

func TestNew_RequiresAPIKey(t *testing.T) {
	cfg := core.DefaultConfig()
	_, err := New(cfg)
	if err == nil {
		t.Fatalf("expected missing api key to fail")
	}
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNew_NormalizesConfig(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.APIKey = "  sk_test_123  "
	cfg.BaseURL = "https://api.bitflow.dev/"
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if got := c.Config().APIKey; got != "sk_test_123" {
		t.Fatalf("expected trimmed api key, got %q", got)
	}
	if got := c.Config().BaseURL; got != "https://api.bitflow.dev" {
		t.Fatalf("expected trailing slash stripped, got %q", got)
	}
}

func TestDo_MapsUnauthorized(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(401, `{"error":{"message":"bad key"}}`),
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if !core.IsAuthentication(err) {
		t.Fatalf("expected authentication error, got %v", err)
	}
	if got := core.ErrorMessage(err); got != "Invalid API key" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestDo_MapsBadRequestWithRemoteMessage(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(400, `{"error":{"message":"recipient is required"}}`),
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := core.ErrorMessage(err); got != "recipient is required" {
		t.Fatalf("expected remote message, got %q", got)
	}
}

func TestDo_MapsNotFound(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(404, `{"error":{"message":"Stream not found"}}`),
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "missing")
	if !core.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDo_MapsRateLimitWithRetryAfter(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		{Response: core.TransportResponse{
			StatusCode: 429,
			Headers:    map[string]string{"retry-after": "30"},
			Body:       []byte(`{}`),
		}},
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if !core.IsRateLimit(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	retryAfter, ok := core.RetryAfter(err)
	if !ok {
		t.Fatalf("expected retry-after to be carried")
	}
	if retryAfter != 30*time.Second {
		t.Fatalf("expected 30s, got %v", retryAfter)
	}
}

func TestDo_MapsRateLimitWithoutRetryAfter(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(429, `{}`),
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if !core.IsRateLimit(err) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if _, ok := core.RetryAfter(err); ok {
		t.Fatalf("expected no retry-after without the header")
	}
}

func TestDo_MapsUnexpectedStatusToAPIError(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(500, `{"error":{"message":"boom","code":"INTERNAL"}}`),
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if err == nil {
		t.Fatalf("expected error for 500")
	}
	if core.IsAuthentication(err) || core.IsValidation(err) || core.IsNotFound(err) || core.IsRateLimit(err) {
		t.Fatalf("500 must map to the generic api error, got %v", err)
	}
	if got := core.ErrorMessage(err); got != "boom" {
		t.Fatalf("expected remote message, got %q", got)
	}
}

func TestDo_WrapsTransportFailureAsNetwork(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	adapter := &fakeAdapter{Scripts: []fakeScript{{Err: cause}}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if !core.IsNetwork(err) {
		t.Fatalf("expected network error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the transport cause to be preserved")
	}
}

func TestDo_PrefixesBaseURL(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(200, `{"data":{"stream":{"id":"stream_1"}}}`),
	}}
	c := newTestClient(t, adapter)

	if _, err := c.GetStream(context.Background(), "stream_1"); err != nil {
		t.Fatalf("get stream: %v", err)
	}
	sent := adapter.Requests[0]
	if sent.URL != "https://api.bitflow.dev/api/streams/stream_1" {
		t.Fatalf("unexpected url %q", sent.URL)
	}
	if sent.Method != "GET" {
		t.Fatalf("unexpected method %q", sent.Method)
	}
	if sent.Timeout != 30*time.Second {
		t.Fatalf("expected config timeout on the request, got %v", sent.Timeout)
	}
}

func TestDo_EscapesPathIDs(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(200, `{"data":{"stream":{"id":"a/b"}}}`),
	}}
	c := newTestClient(t, adapter)

	if _, err := c.GetStream(context.Background(), " a/b "); err != nil {
		t.Fatalf("get stream: %v", err)
	}
	if got := adapter.Requests[0].URL; got != "https://api.bitflow.dev/api/streams/a%2Fb" {
		t.Fatalf("expected escaped id, got %q", got)
	}
}

func TestDo_DecodeFailureIsAPIError(t *testing.T) {
	adapter := &fakeAdapter{Scripts: []fakeScript{
		scriptJSON(200, `not json`),
	}}
	c := newTestClient(t, adapter)

	_, err := c.GetStream(context.Background(), "stream_1")
	if err == nil {
		t.Fatalf("expected malformed body to fail")
	}
	if core.IsNetwork(err) {
		t.Fatalf("decode failures are api errors, not network errors: %v", err)
	}
}
