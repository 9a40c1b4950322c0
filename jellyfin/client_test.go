package jellyfin

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client against an httptest server with a fixed
// device name so header assertions are deterministic.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, zerolog.Nop(), WithDeviceName("test device"))
	require.NoError(t, err)

	return client, server
}

// withSession stores a session record directly, standing in for a
// completed login.
func withSession(c *Client, token string) {
	c.setSession(&Session{
		User:        User{Name: "admin", ID: "admin-id"},
		AccessToken: token,
		ServerID:    "server-1",
	})
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name    string
		url     string
		wantErr bool
		wantURL string
	}{
		{
			name:    "valid url",
			url:     "http://example.com",
			wantErr: false,
			wantURL: "http://example.com",
		},
		{
			name:    "trailing slash stripped",
			url:     "https://jellyfin.example.com/",
			wantErr: false,
			wantURL: "https://jellyfin.example.com",
		},
		{
			name:    "missing URL",
			url:     "",
			wantErr: true,
		},
		{
			name:    "not a url",
			url:     "invalid_url",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			url:     "ftp://example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, logger)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, client.BaseURL())
			assert.Nil(t, client.CurrentSession(), "new client should be unauthenticated")
		})
	}
}

func TestClientOptions(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("with timeout", func(t *testing.T) {
		client, err := NewClient("http://localhost:8096", logger, WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient("http://localhost:8096", logger, WithHTTPClient(custom))
		require.NoError(t, err)
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("with client and device name", func(t *testing.T) {
		client, err := NewClient("http://localhost:8096", logger,
			WithClientName("myapp"), WithDeviceName("box"))
		require.NoError(t, err)
		assert.Equal(t, "myapp", client.clientName)
		assert.Equal(t, "box", client.deviceName)
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient("http://localhost:8096", logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
		assert.Equal(t, DefaultClientName, client.clientName)
		assert.NotEmpty(t, client.deviceName)
	})
}

func TestAuthHeader(t *testing.T) {
	deviceID := fmt.Sprintf("%x", md5.Sum([]byte("my_device")))

	t.Run("with token", func(t *testing.T) {
		header := authHeader("jellyctl", "my device", "tok123")
		expected := fmt.Sprintf(
			`MediaBrowser Client="jellyctl", Device="my_device", DeviceId="%s", Version=1, Token="tok123"`,
			deviceID,
		)
		assert.Equal(t, expected, header)
	})

	t.Run("empty token", func(t *testing.T) {
		header := authHeader("jellyctl", "my_device", "")
		assert.Contains(t, header, `Token=""`)
		assert.Contains(t, header, fmt.Sprintf(`DeviceId="%s"`, deviceID))
	})

	t.Run("pure function", func(t *testing.T) {
		assert.Equal(t,
			authHeader("a", "b c", "t"),
			authHeader("a", "b c", "t"),
		)
	})
}

func TestPing(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/System/Info/Public", r.URL.Path)
		assert.Contains(t, r.Header.Get("X-Emby-Authorization"), `Token=""`)

		json.NewEncoder(w).Encode(PublicSystemInfo{
			ID:         "srv-1",
			ServerName: "test server",
			Version:    "10.9.0",
		})
	}))

	info, err := client.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "srv-1", info.ID)
	assert.Equal(t, "10.9.0", info.Version)
}

func TestDoRequestNetworkError(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.Ping(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not be mapped to APIError")
}
