package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout is the HTTP client timeout used when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultClientName identifies this library in the authorization header.
	DefaultClientName = "jellyctl"
)

// Client represents a Jellyfin API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	clientName string
	deviceName string

	// mu guards session. A login replaces the record wholesale and every
	// request reads it under the lock, so concurrent authentication can
	// never expose a half-written record.
	mu      sync.RWMutex
	session *Session
}

// NewClient creates a new Jellyfin client for the given server URL.
// The URL is validated here, which is what lets endpoint construction in
// the request methods never fail. No network traffic happens until the
// first request.
func NewClient(serverURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	serverURL = strings.TrimRight(serverURL, "/")

	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, serverURL)
	}

	options := clientOptions{
		timeout:    DefaultTimeout,
		clientName: DefaultClientName,
		deviceName: localDeviceName(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	client := &Client{
		baseURL:    serverURL,
		httpClient: &http.Client{Timeout: options.timeout},
		logger:     logger,
		clientName: options.clientName,
		deviceName: options.deviceName,
	}
	if options.httpClient != nil {
		client.httpClient = options.httpClient
	}

	return client, nil
}

// BaseURL returns the server URL the client was constructed with,
// without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CurrentSession returns the stored session record, or nil when the
// client is unauthenticated.
func (c *Client) CurrentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// setSession replaces the stored session record.
func (c *Client) setSession(session *Session) {
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
}

// Ping fetches the server's public identity, verifying the client can
// reach it. No authentication is required.
func (c *Client) Ping(ctx context.Context) (*PublicSystemInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/System/Info/Public", nil, nil, false)
	if err != nil {
		return nil, err
	}

	var info PublicSystemInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &info, nil
}

// doRequest performs a single HTTP round trip and returns the raw response
// body. Endpoints that require authentication fail with ErrAuthNotFound
// before any network traffic when no session is stored; non-2xx statuses
// are mapped to *APIError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, reqBody any, authRequired bool) ([]byte, error) {
	token := ""
	if authRequired {
		session := c.CurrentSession()
		if session == nil {
			return nil, ErrAuthNotFound
		}
		token = session.AccessToken
	}

	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Emby-Authorization", authHeader(c.clientName, c.deviceName, token))
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making Jellyfin API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// localDeviceName resolves the host name reported in the Device field of
// the authorization header. Spaces are replaced so the header stays
// parseable.
func localDeviceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return strings.ReplaceAll(host, " ", "_")
}
