package jellyfin

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// authHeader builds the X-Emby-Authorization header value. It is a pure
// function of the client name, the device name and the access token; the
// token is empty during authentication calls and for public endpoints.
func authHeader(clientName, deviceName, token string) string {
	device := strings.ReplaceAll(deviceName, " ", "_")
	return fmt.Sprintf(
		"MediaBrowser Client=\"%s\", Device=\"%s\", DeviceId=\"%x\", Version=1, Token=\"%s\"",
		clientName, device, md5.Sum([]byte(device)), token,
	)
}

// passwordDigest returns the hex SHA-1 digest the legacy authenticate
// endpoint expects alongside the plain password.
func passwordDigest(password string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(password)))
}

type authenticateByNameRequest struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

// AuthenticateUserByName authenticates against the server with a username
// and password. On success the returned session record replaces any
// previously stored one; on failure the stored record is left untouched
// and the server's structured error is returned.
func (c *Client) AuthenticateUserByName(ctx context.Context, username, password string) (*Session, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/Users/AuthenticateByName", nil, authenticateByNameRequest{
		Username: username,
		Pw:       password,
	}, false)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse authentication response: %w", err)
	}

	c.setSession(&session)
	c.logger.Debug().Str("user", session.User.Name).Msg("Authenticated with Jellyfin")
	return &session, nil
}

// AuthenticateUser authenticates with a user id and password. The password
// is sent both plain and as a SHA-1 digest, which is what the endpoint
// expects. Session handling matches AuthenticateUserByName.
func (c *Client) AuthenticateUser(ctx context.Context, userID, password string) (*Session, error) {
	params := url.Values{}
	params.Set("pw", password)
	params.Set("password", passwordDigest(password))

	endpoint := fmt.Sprintf("/Users/%s/Authenticate", url.PathEscape(userID))
	body, err := c.doRequest(ctx, http.MethodPost, endpoint, params, nil, false)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse authentication response: %w", err)
	}

	c.setSession(&session)
	c.logger.Debug().Str("user", session.User.Name).Msg("Authenticated with Jellyfin")
	return &session, nil
}

// ForgotPassword starts the forgot-password flow for a username.
// No authentication is required.
func (c *Client) ForgotPassword(ctx context.Context, username string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/Users/ForgotPassword", nil, map[string]string{
		"EnteredUsername": username,
	}, false)
	return err
}

// RedeemForgotPasswordPin redeems a PIN issued by the forgot-password flow.
// No authentication is required.
func (c *Client) RedeemForgotPasswordPin(ctx context.Context, pin string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/Users/ForgotPassword/Pin", nil, map[string]string{
		"Pin": pin,
	}, false)
	return err
}
