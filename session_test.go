package wealthsimple

import "testing"

func TestSessionRoundTrip(t *testing.T) {
	s := &Session{
		ClientID:     "cid",
		AccessToken:  "at",
		RefreshToken: "rt",
		SessionID:    "sid",
		WSSDI:        "device",
		TokenInfo:    map[string]any{"identity_canonical_id": "identity-xyz"},
	}

	serialized, err := s.JSON()
	if err != nil {
		t.Fatalf("JSON() unexpected error = %v", err)
	}

	restored, err := RestoreSession(serialized)
	if err != nil {
		t.Fatalf("RestoreSession() unexpected error = %v", err)
	}
	if restored.ClientID != s.ClientID ||
		restored.AccessToken != s.AccessToken ||
		restored.RefreshToken != s.RefreshToken ||
		restored.SessionID != s.SessionID ||
		restored.WSSDI != s.WSSDI {
		t.Errorf("RestoreSession() = %+v, want %+v", restored, s)
	}
	if restored.TokenInfo["identity_canonical_id"] != "identity-xyz" {
		t.Errorf("RestoreSession() lost token_info: %v", restored.TokenInfo)
	}
}

func TestRestoreSessionFieldOrderIndependent(t *testing.T) {
	// Same record, fields shuffled.
	serialized := `{"wssdi":"device","session_id":"sid","client_id":"cid","refresh_token":"rt","access_token":"at"}`

	restored, err := RestoreSession(serialized)
	if err != nil {
		t.Fatalf("RestoreSession() unexpected error = %v", err)
	}
	if restored.ClientID != "cid" || restored.WSSDI != "device" || restored.SessionID != "sid" {
		t.Errorf("RestoreSession() = %+v", restored)
	}
}

func TestRestoreSessionInvalid(t *testing.T) {
	if _, err := RestoreSession("not json"); err == nil {
		t.Error("RestoreSession() expected an error for invalid input")
	}
}

func TestPersistVariants(t *testing.T) {
	s := testSession()

	var gotSession string
	p := &Persist{Session: func(serialized string) { gotSession = serialized }}
	if err := p.call(s, "ignored"); err != nil {
		t.Fatalf("call() unexpected error = %v", err)
	}
	if gotSession == "" {
		t.Error("session-only persister was not invoked")
	}

	var gotUser string
	p = &Persist{SessionUser: func(serialized, username string) { gotUser = username }}
	if err := p.call(s, "alice"); err != nil {
		t.Fatalf("call() unexpected error = %v", err)
	}
	if gotUser != "alice" {
		t.Errorf("session-and-username persister got username %q, want %q", gotUser, "alice")
	}

	// A nil persister is a no-op.
	if err := (*Persist)(nil).call(s, ""); err != nil {
		t.Errorf("nil persister call() unexpected error = %v", err)
	}
}
