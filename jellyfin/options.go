package jellyfin

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	clientName string
	deviceName string
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client, overriding the timeout option.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithClientName overrides the client name reported in the
// MediaBrowser authorization header.
func WithClientName(name string) Option {
	return func(o *clientOptions) {
		if name != "" {
			o.clientName = name
		}
	}
}

// WithDeviceName overrides the device name reported in the
// MediaBrowser authorization header. The local host name is used
// by default.
func WithDeviceName(name string) Option {
	return func(o *clientOptions) {
		if name != "" {
			o.deviceName = name
		}
	}
}
