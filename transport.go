package wealthsimple

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// contains the low level HTTP plumbing to talk to the remote service.

const (
	oauthBaseURL = "https://api.production.wealthsimple.com/v1/oauth/v2"
	graphqlURL   = "https://my.wealthsimple.com/graphql"
	loginPageURL = "https://my.wealthsimple.com/app/login"

	graphqlVersion = "12"
)

// send performs one HTTP exchange and decodes the JSON response body.
//
// Standard headers are attached on every call: the session id and device id
// when known, and the bearer token except when the call itself is a
// refresh-token grant (the expired access token must not shadow the refresh
// token). A network-level failure is reported as *TransportError; the
// response body is decoded whatever the status code, since the provider
// carries application errors in valid JSON payloads.
func (c *Client) send(method, url string, data map[string]any, headers map[string]string) (map[string]any, error) {
	resp, err := c.roundTrip(method, url, data, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	decoded := make(map[string]any)
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("invalid JSON from %s: %w", url, err)}
	}
	return decoded, nil
}

// sendPage performs a GET returning the raw response headers and body, for
// the bootstrap scraper.
func (c *Client) sendPage(url string) (http.Header, string, error) {
	resp, err := c.roundTrip("GET", url, nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &TransportError{Err: err}
	}
	return resp.Header, string(body), nil
}

func (c *Client) roundTrip(method, url string, data map[string]any, headers map[string]string) (*http.Response, error) {
	var body io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("cannot encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}

	if method == "POST" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.SessionID != "" {
		req.Header.Set("x-ws-session-id", c.session.SessionID)
	}
	if c.session.AccessToken != "" && data["grant_type"] != "refresh_token" {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}
	if c.session.WSSDI != "" {
		req.Header.Set("x-ws-device-id", c.session.WSSDI)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	c.log.Debug().
		Str("method", req.Method).
		Str("host", req.URL.Host).
		Str("path", req.URL.Path).
		Str("status", resp.Status).
		Msg("http exchange")
	return resp, nil
}
