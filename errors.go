package wealthsimple

import "fmt"

// The error taxonomy mirrors the failure modes of the remote service:
//
//   - TransportError: the HTTP exchange itself failed; retry-eligible.
//   - APIError: the service answered but the response was malformed or
//     carried an application error. Always keeps the raw response.
//   - LoginFailedError: credentials rejected (other than the OTP case).
//   - OTPRequiredError: the provider wants a one-time passcode; retry the
//     login with one.
//   - ManualLoginRequiredError: the session cannot be refreshed; terminal.
//   - UnexpectedError: an assumed invariant of the provider's page or script
//     format was violated during bootstrap scraping.
//
// Errors propagate to the caller unmodified, except the one recognized
// expiry signal inside EnsureValidToken which is converted into a refresh
// attempt.

// TransportError reports a network-level failure, wrapping its cause.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("http request failed: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a response that reached the service but lacked the
// expected structure or carried an application-level error. Response holds
// the raw decoded payload for diagnostics.
type APIError struct {
	Msg      string
	Response map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s; response: %v", e.Msg, e.Response)
}

// message returns the provider-supplied error message, if any.
func (e *APIError) message() string {
	m, _ := e.Response["message"].(string)
	return m
}

// LoginFailedError reports a credential rejection. Response holds the raw
// provider error payload.
type LoginFailedError struct {
	Response map[string]any
}

func (e *LoginFailedError) Error() string {
	return fmt.Sprintf("login failed; response: %v", e.Response)
}

// OTPRequiredError reports that the provider requires a one-time passcode.
// The caller should prompt the user and call Login again with the answer.
type OTPRequiredError struct{}

func (e *OTPRequiredError) Error() string { return "2FA code required" }

// ManualLoginRequiredError reports that the current session is beyond
// recovery: there is no refresh token, or the refresh was rejected. The
// caller must run an interactive login again.
type ManualLoginRequiredError struct {
	Reason string
}

func (e *ManualLoginRequiredError) Error() string {
	return "OAuth token invalid and cannot be refreshed: " + e.Reason
}

// UnexpectedError reports that the provider's login page or application
// script no longer matches the format the bootstrap scraper relies on.
type UnexpectedError struct {
	Msg string
}

func (e *UnexpectedError) Error() string { return e.Msg }
