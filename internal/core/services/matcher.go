package services

import (
	"context"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// match scores a section's candidates against its window. When features
// are unavailable the first Desired candidates are used unfiltered.
func (r *run) match(ctx context.Context, plan domain.SectionPlan, candidates []domain.Track) ([]domain.Track, error) {
	capped := domain.FirstN(candidates, domain.MaxFeatureBatch)

	return fetch(ctx, r.logger, SourceAudioFeatures, func(ctx context.Context) ([]domain.Track, error) {
		features, err := r.catalog.AudioFeatures(ctx, domain.TrackIDs(capped))
		if err != nil {
			return nil, err
		}
		ids := domain.MatchFeatures(features, plan.Window, plan.Desired)
		return domain.ResolveTracks(ids, capped), nil
	}, func() []domain.Track {
		return domain.FirstN(capped, plan.Desired)
	})
}
