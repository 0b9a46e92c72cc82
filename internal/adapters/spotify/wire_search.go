package spotify

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// SearchTracks runs a track search. query uses the catalog's search syntax,
// e.g. "genre:house".
func (c *Client) SearchTracks(ctx context.Context, query string, limit int, market string) ([]domain.Track, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"track"},
		"limit": {strconv.Itoa(limit)},
	}
	if market != "" {
		params.Set("market", market)
	}

	var body struct {
		Tracks pagingTracks `json:"tracks"`
	}
	if err := c.getJSON(ctx, "search tracks", c.endpoint("/search", params), &body); err != nil {
		return nil, err
	}
	return mapTracks(body.Tracks.Items), nil
}
