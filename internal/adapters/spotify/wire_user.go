package spotify

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// CurrentUser returns the profile of the token's owner.
func (c *Client) CurrentUser(ctx context.Context) (domain.UserProfile, error) {
	var u spotifyUser
	if err := c.getJSON(ctx, "current user", c.endpoint("/me", nil), &u); err != nil {
		return domain.UserProfile{}, err
	}
	return u.toDomain(), nil
}

// TopArtists returns the user's most listened artists.
func (c *Client) TopArtists(ctx context.Context, limit int) ([]domain.Artist, error) {
	var page pagingArtists
	endpoint := c.endpoint("/me/top/artists", url.Values{"limit": {strconv.Itoa(limit)}})
	if err := c.getJSON(ctx, "top artists", endpoint, &page); err != nil {
		return nil, err
	}
	return mapArtists(page.Items), nil
}

// TopTracks returns the user's most listened tracks.
func (c *Client) TopTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	var page pagingTracks
	endpoint := c.endpoint("/me/top/tracks", url.Values{"limit": {strconv.Itoa(limit)}})
	if err := c.getJSON(ctx, "top tracks", endpoint, &page); err != nil {
		return nil, err
	}
	return mapTracks(page.Items), nil
}
