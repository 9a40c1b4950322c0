package jellyfin

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// integrationClient authenticates against a live server configured through
// the environment, or skips the test when none is configured.
func integrationClient(t *testing.T) *Client {
	t.Helper()

	serverURL := os.Getenv("JF_SERVER_URL")
	username := os.Getenv("JF_USERNAME")
	password := os.Getenv("JF_PASSWORD")
	if serverURL == "" || username == "" || password == "" {
		t.Skip("JF_SERVER_URL, JF_USERNAME and JF_PASSWORD not set")
	}

	client, err := NewClient(serverURL, zerolog.Nop())
	require.NoError(t, err)

	_, err = client.AuthenticateUserByName(context.Background(), username, password)
	require.NoError(t, err, "failed to authenticate against live server")

	return client
}

func TestIntegrationUserLifecycle(t *testing.T) {
	client := integrationClient(t)
	ctx := context.Background()

	created, err := client.CreateUser(ctx, "jellyctl-it-user", "jellyctl-it-user")
	require.NoError(t, err)
	assert.Equal(t, "jellyctl-it-user", created.Name)

	t.Cleanup(func() {
		_ = client.DeleteUser(ctx, created.ID)
	})

	fetched, err := client.UserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	conf := fetched.Configuration
	conf.SubtitleMode = SubtitleModeSmart
	require.NoError(t, client.UpdateUserConfiguration(ctx, created.ID, conf))

	updated, err := client.UserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, SubtitleModeSmart, updated.Configuration.SubtitleMode)
}

func TestIntegrationUsers(t *testing.T) {
	client := integrationClient(t)

	users, err := client.Users(context.Background(), false, false)
	require.NoError(t, err)
	assert.NotEmpty(t, users, "server should report at least the admin user")
}
