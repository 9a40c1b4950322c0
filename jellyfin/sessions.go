package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Sessions retrieves the sessions currently known to the server.
// activeWithinSeconds limits the result to sessions active within that
// window; zero returns all sessions.
func (c *Client) Sessions(ctx context.Context, activeWithinSeconds int) ([]SessionInfo, error) {
	var params url.Values
	if activeWithinSeconds > 0 {
		params = url.Values{}
		params.Set("activeWithinSeconds", fmt.Sprintf("%d", activeWithinSeconds))
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/Sessions", params, nil, true)
	if err != nil {
		return nil, err
	}

	var sessions []SessionInfo
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().Int("count", len(sessions)).Msg("Retrieved sessions from Jellyfin")
	return sessions, nil
}
