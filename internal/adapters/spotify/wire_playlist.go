package spotify

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// CreatePlaylist creates a playlist owned by ownerID.
func (c *Client) CreatePlaylist(ctx context.Context, ownerID string, draft domain.PlaylistDraft) (domain.PlaylistRef, error) {
	endpoint := c.endpoint(fmt.Sprintf("/users/%s/playlists", url.PathEscape(ownerID)), nil)
	req := createPlaylistRequest{
		Name:        draft.Name,
		Description: draft.Description,
		Public:      draft.Public,
	}

	var resp createPlaylistResponse
	if err := c.postJSON(ctx, "create playlist", endpoint, req, &resp); err != nil {
		return domain.PlaylistRef{}, err
	}
	if resp.ID == "" {
		return domain.PlaylistRef{}, fmt.Errorf("spotify adapter: create playlist: response has no id")
	}
	return domain.PlaylistRef{ID: resp.ID, URL: resp.ExternalURLs.Spotify}, nil
}

// AddTracks appends uris to a playlist in a single request. Callers split
// larger lists with domain.Batches.
func (c *Client) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	if len(uris) > domain.MaxTracksPerAdd {
		return fmt.Errorf("spotify adapter: add tracks: %d uris exceeds limit %d", len(uris), domain.MaxTracksPerAdd)
	}
	endpoint := c.endpoint(fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID)), nil)
	return c.postJSON(ctx, "add tracks", endpoint, addTracksRequest{URIs: uris}, nil)
}
