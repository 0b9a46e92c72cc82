package services

import (
	"context"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/worker"
)

const (
	relatedSeedArtists = 2
	relatedPerArtist   = 3
	maxExpandedArtists = 10
	topTrackArtists    = 5
	genreSearchLimit   = 50
)

// expandArtists returns the seed artists followed by the first related
// artists of each, truncated to maxExpandedArtists.
func (r *run) expandArtists(ctx context.Context) ([]string, error) {
	seeds := r.seeds.Artists[:min(len(r.seeds.Artists), relatedSeedArtists)]
	related := worker.Map(ctx, r.pool, seeds, func(ctx context.Context, id string) ([]domain.Artist, error) {
		return fetch(ctx, r.logger, SourceRelatedArtists, func(ctx context.Context) ([]domain.Artist, error) {
			return r.catalog.RelatedArtists(ctx, id)
		}, nil)
	})

	expanded := append([]string{}, r.seeds.Artists...)
	for _, res := range related {
		if res.Err != nil {
			return nil, asGenerationError(SourceRelatedArtists.String(), res.Err)
		}
		for _, a := range res.Value[:min(len(res.Value), relatedPerArtist)] {
			expanded = append(expanded, a.ID)
		}
	}
	if len(expanded) > maxExpandedArtists {
		expanded = expanded[:maxExpandedArtists]
	}
	return expanded, nil
}

// candidates gathers the section's candidate pool: top tracks of the
// expanded artists, topped up by a genre search when the pool is thin.
func (r *run) candidates(ctx context.Context, plan domain.SectionPlan) ([]domain.Track, error) {
	artists := r.artists[:min(len(r.artists), topTrackArtists)]
	top := worker.Map(ctx, r.pool, artists, func(ctx context.Context, id string) ([]domain.Track, error) {
		return fetch(ctx, r.logger, SourceArtistTopTracks, func(ctx context.Context) ([]domain.Track, error) {
			return r.catalog.ArtistTopTracks(ctx, id, r.market)
		}, nil)
	})

	var pool []domain.Track
	for _, res := range top {
		if res.Err != nil {
			return nil, asGenerationError(SourceArtistTopTracks.String(), res.Err)
		}
		pool = append(pool, res.Value...)
	}

	if len(pool) < 2*plan.Desired && len(r.seeds.Genres) > 0 {
		query := "genre:" + r.seeds.Genres[0]
		found, err := fetch(ctx, r.logger, SourceGenreSearch, func(ctx context.Context) ([]domain.Track, error) {
			return r.catalog.SearchTracks(ctx, query, genreSearchLimit, r.market)
		}, nil)
		if err != nil {
			return nil, err
		}
		pool = append(pool, found...)
	}

	return domain.DedupeTracks(pool), nil
}
