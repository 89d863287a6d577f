package wealthsimple

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

// Test helpers: clients wired to a scripted in-memory transport so no test
// ever reaches the real service.

// rtFunc adapts a function to http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// fakeTransport scripts responses and counts the requests it served.
type fakeTransport struct {
	calls   int
	handler func(r *http.Request, body map[string]any) *http.Response
}

func (f *fakeTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.calls++
	var body map[string]any
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
	}
	return f.handler(r, body), nil
}

// jsonResponse builds a canned HTTP response with the given JSON body.
func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// testSession is a fully populated restored session, so that bootstrap
// performs no network call.
func testSession() *Session {
	return &Session{
		ClientID:     "test_client",
		AccessToken:  "test_access",
		RefreshToken: "test_refresh",
		SessionID:    "test_session",
		WSSDI:        "test_wssdi",
	}
}

// newTestClient creates a client from a restored session and the scripted
// transport.
func newTestClient(t *testing.T, ft *fakeTransport) *Client {
	t.Helper()
	c, err := New(
		WithSession(testSession()),
		WithHTTPClient(&http.Client{Transport: ft}),
	)
	if err != nil {
		t.Fatalf("New() unexpected error = %v", err)
	}
	return c
}

// jbody marshals a value for scripted responses.
func jbody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("cannot marshal response: %v", err)
	}
	return string(b)
}
