package ports

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// Error classes a CatalogError can be matched against with errors.Is.
var (
	ErrCatalogUnauthorized = errors.New("catalog: unauthorized")
	ErrCatalogForbidden    = errors.New("catalog: forbidden")
	ErrCatalogNotFound     = errors.New("catalog: not found")
	ErrCatalogBadRequest   = errors.New("catalog: bad request")
	ErrCatalogRateLimited  = errors.New("catalog: rate limited")
	ErrCatalogUnavailable  = errors.New("catalog: unavailable")
)

// CatalogError is a non-2xx response from the catalog API.
type CatalogError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *CatalogError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *CatalogError) Is(target error) bool {
	switch target {
	case ErrCatalogUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrCatalogForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrCatalogNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrCatalogBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrCatalogRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrCatalogUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// Catalog is the remote music catalog the generator drives. One Catalog is
// bound to one user credential.
type Catalog interface {
	CurrentUser(ctx context.Context) (domain.UserProfile, error)
	TopArtists(ctx context.Context, limit int) ([]domain.Artist, error)
	TopTracks(ctx context.Context, limit int) ([]domain.Track, error)
	RelatedArtists(ctx context.Context, artistID string) ([]domain.Artist, error)
	ArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error)
	SearchTracks(ctx context.Context, query string, limit int, market string) ([]domain.Track, error)
	AudioFeatures(ctx context.Context, trackIDs []string) ([]domain.AudioFeatures, error)
	CreatePlaylist(ctx context.Context, ownerID string, draft domain.PlaylistDraft) (domain.PlaylistRef, error)
	AddTracks(ctx context.Context, playlistID string, uris []string) error
}

// CatalogFactory binds a Catalog to a validated credential.
type CatalogFactory func(ctx context.Context, cred domain.Credential) Catalog
