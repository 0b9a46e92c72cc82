package domain

import "math"

const (
	// DefaultSectionSeconds applies when a section describes no usable length.
	DefaultSectionSeconds = 180
	// DefaultSecondsPerTrack is a rough average track length (~3.5 minutes).
	DefaultSecondsPerTrack = 210

	MinFetchTarget = 5
	MaxFetchTarget = 20
)

// EffectiveSeconds returns how long a section lasts. An explicit positive
// duration wins, then a complete rounds*(work+rest) interval description, then the
// default. An interval product that would overflow int also yields the
// default. The result is always positive.
func EffectiveSeconds(s Section) int {
	if s.Duration != nil && *s.Duration > 0 {
		return *s.Duration
	}
	if s.Rounds != nil && s.Work != nil && s.Rest != nil &&
		*s.Rounds > 0 && *s.Work > 0 && *s.Rest >= 0 {
		rounds, work, rest := *s.Rounds, *s.Work, *s.Rest
		if rest <= math.MaxInt-work {
			perRound := work + rest
			if rounds <= math.MaxInt/perRound {
				return rounds * perRound
			}
		}
	}
	return DefaultSectionSeconds
}

// EstimateTrackCount returns ceil(seconds/avgSecondsPerTrack), at least 1.
// A non-positive average falls back to DefaultSecondsPerTrack.
func EstimateTrackCount(s Section, avgSecondsPerTrack int) int {
	if avgSecondsPerTrack <= 0 {
		avgSecondsPerTrack = DefaultSecondsPerTrack
	}
	n := int(math.Ceil(float64(EffectiveSeconds(s)) / float64(avgSecondsPerTrack)))
	if n < 1 {
		return 1
	}
	return n
}

// FetchTarget clamps a desired track count into [MinFetchTarget, MaxFetchTarget]
// so very short or very long sections still request a sane batch.
func FetchTarget(count int) int {
	return min(max(count, MinFetchTarget), MaxFetchTarget)
}

// SectionPlan is a normalized section ready for matching.
type SectionPlan struct {
	Index   int
	Name    string
	Window  FeatureWindow
	Desired int
}

// PlanSection normalizes intensity and sizes the section. The boolean is
// false when the intensity had to be defaulted.
func PlanSection(index int, s Section) (SectionPlan, bool) {
	intensity, ok := ParseIntensity(string(s.Intensity))
	window, _ := WindowFor(intensity)
	return SectionPlan{
		Index:   index,
		Name:    s.Name,
		Window:  window,
		Desired: FetchTarget(EstimateTrackCount(s, DefaultSecondsPerTrack)),
	}, ok
}
