package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// RelatedArtists returns artists similar to artistID.
func (c *Client) RelatedArtists(ctx context.Context, artistID string) ([]domain.Artist, error) {
	var body struct {
		Artists []*spotifyArtist `json:"artists"`
	}
	endpoint := c.endpoint(fmt.Sprintf("/artists/%s/related-artists", url.PathEscape(artistID)), nil)
	if err := c.getJSON(ctx, "related artists", endpoint, &body); err != nil {
		return nil, err
	}
	return mapArtists(body.Artists), nil
}

// ArtistTopTracks returns an artist's most popular tracks in market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error) {
	var body struct {
		Tracks []*spotifyTrack `json:"tracks"`
	}
	endpoint := c.endpoint(
		fmt.Sprintf("/artists/%s/top-tracks", url.PathEscape(artistID)),
		url.Values{"market": {market}},
	)
	if err := c.getJSON(ctx, "artist top tracks", endpoint, &body); err != nil {
		return nil, err
	}
	return mapTracks(body.Tracks), nil
}
