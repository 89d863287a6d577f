package wealthsimple

import "errors"

// wsClientHeader identifies the official web application on OAuth calls.
const wsClientHeader = "@wealthsimple/wealthsimple"

// Login performs a password-grant OAuth request and stores the returned
// token pair in the session.
//
// When the provider answers with the error code "invalid_grant" and no OTP
// was supplied, the account has two-factor authentication enabled:
// *OTPRequiredError is returned and the caller should prompt the user and
// call Login again with the answer. The same error code with an OTP supplied
// means the credentials or the code were actually wrong and yields
// *LoginFailedError.
//
// An empty scope requests DefaultScope. The persister, if any, receives the
// serialized session (and the username) on success.
func (c *Client) Login(username, password, otpAnswer, scope string, persist *Persist) error {
	if scope == "" {
		scope = DefaultScope
	}
	data := map[string]any{
		"grant_type":     "password",
		"username":       username,
		"password":       password,
		"skip_provision": "true",
		"scope":          scope,
		"client_id":      c.session.ClientID,
		"otp_claim":      nil,
	}
	headers := map[string]string{
		"x-wealthsimple-client": wsClientHeader,
		"x-ws-profile":          "undefined",
	}
	if otpAnswer != "" {
		headers["x-wealthsimple-otp"] = otpAnswer + ";remember=true"
	}

	response, err := c.send("POST", oauthBaseURL+"/token", data, headers)
	if err != nil {
		return err
	}

	if response["error"] == "invalid_grant" && otpAnswer == "" {
		return &OTPRequiredError{}
	}
	if _, failed := response["error"]; failed {
		return &LoginFailedError{Response: response}
	}

	c.session.AccessToken = str(response, "access_token")
	c.session.RefreshToken = str(response, "refresh_token")
	return persist.call(c.session, username)
}

// EnsureValidToken verifies that the access token is still usable and
// refreshes it if not.
//
// The check is a minimal probe query; there is no dedicated expiry endpoint,
// so expiry is recognized purely by the provider's "Not Authorized." error
// message. Any other probe failure propagates unchanged without a refresh
// attempt. When a refresh is needed and no refresh token exists, or the
// refresh response is missing either token, *ManualLoginRequiredError is
// returned and the caller must run an interactive login again.
func (c *Client) EnsureValidToken(persist *Persist, username string) error {
	if c.session.AccessToken != "" {
		_, err := c.SearchSecurity("XEQT")
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.message() != "Not Authorized." {
			return err
		}
		// Access token expired; try to refresh it below.
	}

	if c.session.RefreshToken == "" {
		return &ManualLoginRequiredError{Reason: "no refresh token"}
	}

	data := map[string]any{
		"grant_type":    "refresh_token",
		"refresh_token": c.session.RefreshToken,
		"client_id":     c.session.ClientID,
	}
	headers := map[string]string{
		"x-wealthsimple-client": wsClientHeader,
		"x-ws-profile":          "invest",
	}
	response, err := c.send("POST", oauthBaseURL+"/token", data, headers)
	if err != nil {
		return err
	}

	access := str(response, "access_token")
	refresh := str(response, "refresh_token")
	if access == "" || refresh == "" {
		reason := str(response, "error")
		if reason == "" {
			reason = "invalid refresh response"
		}
		return &ManualLoginRequiredError{Reason: reason}
	}

	c.session.AccessToken = access
	c.session.RefreshToken = refresh
	return persist.call(c.session, username)
}

// GetTokenInfo returns the token introspection record, which carries the
// identity canonical id required by several queries. It is fetched at most
// once per client and cached in the session.
func (c *Client) GetTokenInfo() (map[string]any, error) {
	if c.session.TokenInfo != nil {
		return c.session.TokenInfo, nil
	}
	headers := map[string]string{"x-wealthsimple-client": wsClientHeader}
	response, err := c.send("GET", oauthBaseURL+"/token/info", nil, headers)
	if err != nil {
		return nil, err
	}
	c.session.TokenInfo = response
	return response, nil
}
