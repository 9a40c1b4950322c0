package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Users retrieves the users visible to the authenticated user, filtered
// by hidden and disabled state.
func (c *Client) Users(ctx context.Context, isHidden, isDisabled bool) ([]User, error) {
	params := url.Values{}
	params.Set("is_hidden", strconv.FormatBool(isHidden))
	params.Set("is_disabled", strconv.FormatBool(isDisabled))

	body, err := c.doRequest(ctx, http.MethodGet, "/Users", params, nil, true)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().Int("count", len(users)).Msg("Retrieved users from Jellyfin")
	return users, nil
}

// UserByID fetches a single user by id.
func (c *Client) UserByID(ctx context.Context, id string) (*User, error) {
	endpoint := fmt.Sprintf("/Users/%s", url.PathEscape(id))
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &user, nil
}

// Me retrieves the user the current session belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/Users/Me", nil, nil, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &user, nil
}

// PublicUsers retrieves the users the server exposes on its login screen.
// No authentication is required.
func (c *Client) PublicUsers(ctx context.Context) ([]User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/Users/Public", nil, nil, false)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return users, nil
}

type createUserRequest struct {
	Name     string `json:"Name"`
	Password string `json:"Password"`
}

// CreateUser creates a new user and returns the server-assigned record.
func (c *Client) CreateUser(ctx context.Context, username, password string) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/Users/New", nil, createUserRequest{
		Name:     username,
		Password: password,
	}, true)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().Str("user", user.Name).Str("id", user.ID).Msg("Created user")
	return &user, nil
}

// DeleteUser deletes a user by id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/Users/%s", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, true)
	return err
}

// UpdateUser replaces a user's profile record.
func (c *Client) UpdateUser(ctx context.Context, id string, user User) error {
	endpoint := fmt.Sprintf("/Users/%s", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, user, true)
	return err
}

// UpdateUserConfiguration replaces a user's configuration.
func (c *Client) UpdateUserConfiguration(ctx context.Context, id string, conf UserConfiguration) error {
	endpoint := fmt.Sprintf("/Users/%s/Configuration", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, conf, true)
	return err
}

// UpdateUserPassword sets a new password for a user.
func (c *Client) UpdateUserPassword(ctx context.Context, id, newPassword string) error {
	endpoint := fmt.Sprintf("/Users/%s/Password", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, map[string]string{
		"NewPw": newPassword,
	}, true)
	return err
}

// UpdateUserPolicy replaces a user's policy.
func (c *Client) UpdateUserPolicy(ctx context.Context, id string, policy UserPolicy) error {
	endpoint := fmt.Sprintf("/Users/%s/Policy", url.PathEscape(id))
	_, err := c.doRequest(ctx, http.MethodPost, endpoint, nil, policy, true)
	return err
}
