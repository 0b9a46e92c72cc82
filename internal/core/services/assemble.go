package services

import (
	"context"
	"errors"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// assemble creates the playlist and appends uris in order.
func (r *run) assemble(ctx context.Context, draft domain.PlaylistDraft, uris []string) (domain.PlaylistRef, error) {
	user, err := fetch(ctx, r.logger, SourceCurrentUser, r.catalog.CurrentUser, nil)
	if err != nil {
		return domain.PlaylistRef{}, err
	}

	ref, err := fetch(ctx, r.logger, SourceCreatePlaylist, func(ctx context.Context) (domain.PlaylistRef, error) {
		return r.createPlaylist(ctx, user, draft)
	}, nil)
	if err != nil {
		return domain.PlaylistRef{}, err
	}

	// A failed batch leaves the playlist partially populated.
	for i, batch := range domain.Batches(uris, domain.MaxTracksPerAdd) {
		_, err := fetch(ctx, r.logger, SourceAddTracks, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, r.catalog.AddTracks(ctx, ref.ID, batch)
		}, nil)
		if err != nil {
			r.logger.Error("append failed", "playlist", ref.ID, "batch", i, "err", err)
			return domain.PlaylistRef{}, err
		}
	}
	return ref, nil
}

// createPlaylist creates under the display name and retries once under
// the raw user id when the first attempt fails with an addressing error.
func (r *run) createPlaylist(ctx context.Context, user domain.UserProfile, draft domain.PlaylistDraft) (domain.PlaylistRef, error) {
	ref, err := r.catalog.CreatePlaylist(ctx, user.OwnerID(), draft)
	if err == nil {
		return ref, nil
	}

	fallbackID, ok := user.FallbackOwnerID()
	if !ok || !isIdentifierError(err) {
		return domain.PlaylistRef{}, err
	}
	r.logger.Warn("playlist creation failed, retrying with user id", "owner", user.OwnerID(), "err", err)
	return r.catalog.CreatePlaylist(ctx, fallbackID, draft)
}

func isIdentifierError(err error) bool {
	return errors.Is(err, ports.ErrCatalogBadRequest) ||
		errors.Is(err, ports.ErrCatalogForbidden) ||
		errors.Is(err, ports.ErrCatalogNotFound)
}
