package wealthsimple

import (
	"encoding/json"
	"fmt"
)

// Session holds the authentication and device identifiers for one user of
// the Wealthsimple API. It is owned and mutated by the client; callers only
// ever see it serialized, through the Persist callback or Client.Session.
//
// ClientID and WSSDI (the device id) are scraped once from the provider and
// should be persisted across restarts. SessionID is generated client-side
// and never scraped. TokenInfo caches the result of the token introspection
// endpoint.
type Session struct {
	ClientID     string         `json:"client_id,omitempty"`
	AccessToken  string         `json:"access_token,omitempty"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	SessionID    string         `json:"session_id,omitempty"`
	WSSDI        string         `json:"wssdi,omitempty"`
	TokenInfo    map[string]any `json:"token_info,omitempty"`
}

// JSON serializes the session to its flat textual form. The round trip
// through RestoreSession is lossless and field-order independent.
func (s *Session) JSON() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("cannot serialize session: %w", err)
	}
	return string(b), nil
}

// RestoreSession deserializes a session previously obtained from
// Session.JSON.
func RestoreSession(serialized string) (*Session, error) {
	s := new(Session)
	if err := json.Unmarshal([]byte(serialized), s); err != nil {
		return nil, fmt.Errorf("cannot restore session: %w", err)
	}
	return s, nil
}

// Persist is invoked with the freshly serialized session whenever tokens
// change (login and refresh). Exactly one of the two fields is expected to
// be set: Session receives only the serialized record, SessionUser also
// receives the username that was used at login, for callers that key their
// storage by user.
type Persist struct {
	Session     func(serialized string)
	SessionUser func(serialized, username string)
}

// call serializes the session and routes it to whichever callback is set.
func (p *Persist) call(s *Session, username string) error {
	if p == nil || (p.Session == nil && p.SessionUser == nil) {
		return nil
	}
	serialized, err := s.JSON()
	if err != nil {
		return err
	}
	if p.SessionUser != nil {
		p.SessionUser(serialized, username)
		return nil
	}
	p.Session(serialized)
	return nil
}
