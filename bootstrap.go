package wealthsimple

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// The device id (wssdi) and the OAuth client id are not documented anywhere:
// the web application receives the former as a cookie on the login page and
// embeds the latter in its bundled script. Bootstrap reproduces what a
// browser would observe.

var (
	wssdiRe    = regexp.MustCompile(`(?i)wssdi=([a-f0-9]+);`)
	appJSRe    = regexp.MustCompile(`(?i)<script.*src="(.+/app-[a-f0-9]+\.js)`)
	clientIDRe = regexp.MustCompile(`(?i)production:.*clientId:"([a-f0-9]+)"`)
)

// bootstrap populates the session's identifying fields.
//
// With a restored session the five identifying fields are copied verbatim
// and no network call is made, whether or not tokens are present. Otherwise
// the missing identifiers are scraped from the provider: the login page
// response headers carry the device id cookie and its body references the
// application script that embeds the client id. The session id is always
// generated client-side.
func (c *Client) bootstrap() error {
	if c.restored != nil {
		c.session.AccessToken = c.restored.AccessToken
		c.session.WSSDI = c.restored.WSSDI
		c.session.SessionID = c.restored.SessionID
		c.session.ClientID = c.restored.ClientID
		c.session.RefreshToken = c.restored.RefreshToken
		return nil
	}

	var appJSURL string

	if c.session.WSSDI == "" || c.session.ClientID == "" {
		header, body, err := c.sendPage(loginPageURL)
		if err != nil {
			return err
		}

		if c.session.WSSDI == "" {
			for _, cookie := range header.Values("Set-Cookie") {
				if m := wssdiRe.FindStringSubmatch(cookie); m != nil {
					c.session.WSSDI = m[1]
					break
				}
			}
		}
		for _, line := range strings.Split(body, "\n") {
			if strings.Contains(strings.ToLower(line), "<script") {
				if m := appJSRe.FindStringSubmatch(line); m != nil {
					appJSURL = m[1]
					break
				}
			}
		}

		if c.session.WSSDI == "" {
			return &UnexpectedError{Msg: "couldn't find wssdi in login page response headers"}
		}
	}

	if c.session.ClientID == "" {
		if appJSURL == "" {
			return &UnexpectedError{Msg: "couldn't find app JS URL in login page response body"}
		}

		_, script, err := c.sendPage(appJSURL)
		if err != nil {
			return err
		}
		if m := clientIDRe.FindStringSubmatch(script); m != nil {
			c.session.ClientID = m[1]
		}
		if c.session.ClientID == "" {
			return &UnexpectedError{Msg: "couldn't find clientId in app JS"}
		}
	}

	if c.session.SessionID == "" {
		c.session.SessionID = uuid.NewString()
	}
	return nil
}
