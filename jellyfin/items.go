package jellyfin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ItemsOptions narrows an item browse query. The zero value queries the
// whole library in server order.
type ItemsOptions struct {
	UserID           string
	ParentID         string
	SearchTerm       string
	IncludeItemTypes []string
	Recursive        bool
	SortBy           string
	Limit            int
	StartIndex       int
}

func (o ItemsOptions) values() url.Values {
	params := url.Values{}
	if o.UserID != "" {
		params.Set("userId", o.UserID)
	}
	if o.ParentID != "" {
		params.Set("parentId", o.ParentID)
	}
	if o.SearchTerm != "" {
		params.Set("searchTerm", o.SearchTerm)
	}
	if len(o.IncludeItemTypes) > 0 {
		params.Set("includeItemTypes", strings.Join(o.IncludeItemTypes, ","))
	}
	if o.Recursive {
		params.Set("recursive", "true")
	}
	if o.SortBy != "" {
		params.Set("sortBy", o.SortBy)
	}
	if o.Limit > 0 {
		params.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.StartIndex > 0 {
		params.Set("startIndex", strconv.Itoa(o.StartIndex))
	}
	return params
}

// MediaItem is a library item as returned by the browse endpoints.
type MediaItem struct {
	Name            string  `json:"Name"`
	ID              string  `json:"Id"`
	ServerID        string  `json:"ServerId,omitempty"`
	Type            string  `json:"Type"`
	MediaType       string  `json:"MediaType,omitempty"`
	IsFolder        bool    `json:"IsFolder"`
	ParentID        string  `json:"ParentId,omitempty"`
	ProductionYear  int     `json:"ProductionYear,omitempty"`
	RunTimeTicks    int64   `json:"RunTimeTicks,omitempty"`
	Overview        string  `json:"Overview,omitempty"`
	CommunityRating float64 `json:"CommunityRating,omitempty"`
}

// Runtime converts the item's tick count (100ns units) to a duration.
func (i MediaItem) Runtime() time.Duration {
	return time.Duration(i.RunTimeTicks) * 100 * time.Nanosecond
}

// ItemsResult is one page of an item query.
type ItemsResult struct {
	Items            []MediaItem `json:"Items"`
	TotalRecordCount int         `json:"TotalRecordCount"`
	StartIndex       int         `json:"StartIndex"`
}

// Items queries library items. The server returns a single page; callers
// page with Limit and StartIndex.
func (c *Client) Items(ctx context.Context, opts ItemsOptions) (*ItemsResult, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/Items", opts.values(), nil, true)
	if err != nil {
		return nil, err
	}

	var result ItemsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug().
		Int("count", len(result.Items)).
		Int("total", result.TotalRecordCount).
		Msg("Retrieved items from Jellyfin")
	return &result, nil
}

// ItemByID fetches a single item as seen by the given user.
func (c *Client) ItemByID(ctx context.Context, userID, itemID string) (*MediaItem, error) {
	endpoint := fmt.Sprintf("/Users/%s/Items/%s", url.PathEscape(userID), url.PathEscape(itemID))
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var item MediaItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &item, nil
}
