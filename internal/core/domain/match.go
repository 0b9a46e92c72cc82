package domain

import (
	"math"
	"sort"
)

// MaxFeatureBatch is the catalog's upper bound for one audio-feature lookup.
const MaxFeatureBatch = 100

// RankByEnergy filters features with keep and returns at most limit of them,
// closest to the target energy first. Ties keep their input order.
func RankByEnergy(features []AudioFeatures, target float64, limit int, keep func(AudioFeatures) bool) []AudioFeatures {
	ranked := make([]AudioFeatures, 0, len(features))
	for _, f := range features {
		if keep(f) {
			ranked = append(ranked, f)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Energy-target) < math.Abs(ranked[j].Energy-target)
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// MatchFeatures selects up to desired track ids for a window. The strict
// pass applies every bound; when it comes up short the relaxed pass keeps
// only the tempo bound and fills the remaining slots. Invalid records are
// ignored. An under-filled result is returned as-is.
func MatchFeatures(features []AudioFeatures, window FeatureWindow, desired int) []string {
	if desired <= 0 {
		return []string{}
	}
	valid := make([]AudioFeatures, 0, len(features))
	for _, f := range features {
		if f.Valid() {
			valid = append(valid, f)
		}
	}

	strict := RankByEnergy(valid, window.TargetEnergy, desired, window.Matches)
	ids := make([]string, 0, desired)
	picked := make(map[string]struct{}, desired)
	for _, f := range strict {
		ids = append(ids, f.ID)
		picked[f.ID] = struct{}{}
	}
	if len(ids) >= desired {
		return ids
	}

	relaxed := RankByEnergy(valid, window.TargetEnergy, desired, func(f AudioFeatures) bool {
		return window.InTempo(f.Tempo)
	})
	for _, f := range relaxed {
		if len(ids) == desired {
			break
		}
		if _, dup := picked[f.ID]; dup {
			continue
		}
		ids = append(ids, f.ID)
		picked[f.ID] = struct{}{}
	}
	return ids
}

// ResolveTracks maps matched ids back to candidates, in id order. Ids that
// are not among the candidates are dropped.
func ResolveTracks(ids []string, candidates []Track) []Track {
	byID := make(map[string]Track, len(candidates))
	for _, c := range candidates {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}
	out := make([]Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// FirstN returns up to n leading candidates, the unfiltered fallback used
// when features are unavailable.
func FirstN(candidates []Track, n int) []Track {
	if n < 0 {
		n = 0
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]Track, len(candidates))
	copy(out, candidates)
	return out
}
