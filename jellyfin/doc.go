// Package jellyfin provides a typed client for the Jellyfin media server
// HTTP API, covering user management, authentication and library browsing.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: The main API client holding the server URL and session
//   - Types: Wire models (users, configuration, policy, sessions, items)
//   - Errors: Structured error types for better error handling
//   - Concurrent: Bounded-concurrency helpers for bulk operations
//
// Every endpoint method performs exactly one HTTP round trip: it builds the
// endpoint URL, attaches the MediaBrowser authorization header, issues the
// request and maps the response to a typed result or a structured error.
// There are no retries and no response caching.
//
// # Usage
//
// Create a client and authenticate:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := jellyfin.NewClient("https://jellyfin.example.com", logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if _, err := client.AuthenticateUserByName(ctx, "admin", "password"); err != nil {
//	    log.Fatal(err)
//	}
//
//	users, err := client.Users(ctx, false, false)
//
// # Authentication
//
// A successful login stores a session record (user profile, session
// descriptor, access token) on the client; the record is replaced wholesale
// by each successful authentication call and read under a lock, so
// concurrent requests always see a complete record. Calling an endpoint
// that requires authentication before a session exists returns
// ErrAuthNotFound without touching the network.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the HTTP status, the
// server's problem-details fields (type/title/detail/instance), an optional
// field-validation map and the raw body as a fallback message:
//
//	var apiErr *jellyfin.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//	    // handle missing resource
//	}
package jellyfin
