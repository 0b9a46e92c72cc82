package services

import (
	"context"

	"github.com/charmbracelet/log"
)

// Source names one kind of catalog call made during a run.
type Source int

const (
	SourceTopArtists Source = iota + 1
	SourceTopTracks
	SourceRelatedArtists
	SourceArtistTopTracks
	SourceGenreSearch
	SourceAudioFeatures
	SourceCurrentUser
	SourceCreatePlaylist
	SourceAddTracks
)

func (s Source) String() string {
	switch s {
	case SourceTopArtists:
		return "top artists"
	case SourceTopTracks:
		return "top tracks"
	case SourceRelatedArtists:
		return "related artists"
	case SourceArtistTopTracks:
		return "artist top tracks"
	case SourceGenreSearch:
		return "genre search"
	case SourceAudioFeatures:
		return "audio features"
	case SourceCurrentUser:
		return "current user"
	case SourceCreatePlaylist:
		return "create playlist"
	case SourceAddTracks:
		return "add tracks"
	default:
		return "unknown source"
	}
}

// Policy is what a run does when a source fails.
type Policy int

const (
	PolicyAbort Policy = iota
	PolicySubstituteEmpty
	PolicySubstituteFallback
)

// sourcePolicies is consulted by fetch. Sources missing from the table abort.
var sourcePolicies = map[Source]Policy{
	SourceTopArtists:      PolicySubstituteEmpty,
	SourceTopTracks:       PolicySubstituteEmpty,
	SourceRelatedArtists:  PolicySubstituteEmpty,
	SourceArtistTopTracks: PolicySubstituteEmpty,
	SourceGenreSearch:     PolicySubstituteEmpty,
	SourceAudioFeatures:   PolicySubstituteFallback,
	SourceCurrentUser:     PolicyAbort,
	SourceCreatePlaylist:  PolicyAbort,
	SourceAddTracks:       PolicyAbort,
}

// PolicyFor returns the failure policy of src.
func PolicyFor(src Source) Policy {
	return sourcePolicies[src]
}

func (p Policy) kind() ErrorKind {
	switch p {
	case PolicySubstituteEmpty:
		return KindDegradedSource
	case PolicySubstituteFallback:
		return KindDegradedMatching
	default:
		return KindTerminal
	}
}

// fetch runs call and applies src's failure policy. A substituted failure
// is logged and yields the zero value, or fallback() when the policy says
// so. Cancellation of ctx always aborts.
func fetch[T any](ctx context.Context, logger *log.Logger, src Source, call func(context.Context) (T, error), fallback func() T) (T, error) {
	v, err := call(ctx)
	if err == nil {
		return v, nil
	}

	var zero T
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, newGenerationError(KindTerminal, src.String(), ctxErr)
	}

	policy := PolicyFor(src)
	switch policy {
	case PolicySubstituteEmpty:
		logger.Warn("catalog source degraded", "source", src, "kind", policy.kind(), "err", err)
		return zero, nil
	case PolicySubstituteFallback:
		logger.Warn("catalog source degraded", "source", src, "kind", policy.kind(), "err", err)
		if fallback == nil {
			return zero, nil
		}
		return fallback(), nil
	default:
		return zero, newGenerationError(KindTerminal, src.String(), err)
	}
}
