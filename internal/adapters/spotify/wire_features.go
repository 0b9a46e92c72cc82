package spotify

import (
	"context"
	"net/url"
	"strings"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// AudioFeatures fetches features for trackIDs in batches of at most
// domain.MaxFeatureBatch. Null entries and records without a tempo are
// dropped, so the result may be shorter than the input.
func (c *Client) AudioFeatures(ctx context.Context, trackIDs []string) ([]domain.AudioFeatures, error) {
	out := make([]domain.AudioFeatures, 0, len(trackIDs))
	for _, batch := range domain.Batches(trackIDs, domain.MaxFeatureBatch) {
		var body struct {
			AudioFeatures []*spotifyAudioFeatures `json:"audio_features"`
		}
		endpoint := c.endpoint("/audio-features", url.Values{"ids": {strings.Join(batch, ",")}})
		if err := c.getJSON(ctx, "audio features", endpoint, &body); err != nil {
			return nil, err
		}
		for _, f := range body.AudioFeatures {
			if f == nil {
				continue
			}
			if df := f.toDomain(); df.Valid() {
				out = append(out, df)
			}
		}
	}
	return out, nil
}
