package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// fakeCatalog is an in-memory ports.Catalog that records every call.
type fakeCatalog struct {
	mu sync.Mutex

	user    domain.UserProfile
	userErr error

	topArtists    []domain.Artist
	topArtistsErr error
	topTracks     []domain.Track
	topTracksErr  error

	related         map[string][]domain.Artist
	relatedErr      map[string]error
	artistTracks    map[string][]domain.Track
	artistTracksErr map[string]error

	searchResults []domain.Track
	searchErr     error

	features    map[string]domain.AudioFeatures
	featuresErr error

	createErr map[string]error
	addErr    error

	relatedCalls      []string
	artistTrackCalls  []string
	searches          []string
	featureRequests   [][]string
	createOwners      []string
	added             [][]string
	currentUserCalled bool
}

var _ ports.Catalog = (*fakeCatalog)(nil)

func catalogErr(op string, status int) error {
	return &ports.CatalogError{Op: op, StatusCode: status, Body: http.StatusText(status)}
}

func (f *fakeCatalog) CurrentUser(ctx context.Context) (domain.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserProfile{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentUserCalled = true
	return f.user, f.userErr
}

func (f *fakeCatalog) TopArtists(ctx context.Context, limit int) ([]domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.topArtistsErr != nil {
		return nil, f.topArtistsErr
	}
	return f.topArtists[:min(limit, len(f.topArtists))], nil
}

func (f *fakeCatalog) TopTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.topTracksErr != nil {
		return nil, f.topTracksErr
	}
	return f.topTracks[:min(limit, len(f.topTracks))], nil
}

func (f *fakeCatalog) RelatedArtists(ctx context.Context, artistID string) ([]domain.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relatedCalls = append(f.relatedCalls, artistID)
	if err := f.relatedErr[artistID]; err != nil {
		return nil, err
	}
	return f.related[artistID], nil
}

func (f *fakeCatalog) ArtistTopTracks(ctx context.Context, artistID, market string) ([]domain.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artistTrackCalls = append(f.artistTrackCalls, artistID)
	if err := f.artistTracksErr[artistID]; err != nil {
		return nil, err
	}
	return f.artistTracks[artistID], nil
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, query string, limit int, market string) ([]domain.Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[:min(limit, len(f.searchResults))], nil
}

func (f *fakeCatalog) AudioFeatures(ctx context.Context, trackIDs []string) ([]domain.AudioFeatures, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.featureRequests = append(f.featureRequests, append([]string(nil), trackIDs...))
	if f.featuresErr != nil {
		return nil, f.featuresErr
	}
	out := []domain.AudioFeatures{}
	for _, id := range trackIDs {
		if feat, ok := f.features[id]; ok {
			out = append(out, feat)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CreatePlaylist(ctx context.Context, ownerID string, draft domain.PlaylistDraft) (domain.PlaylistRef, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlaylistRef{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createOwners = append(f.createOwners, ownerID)
	if err := f.createErr[ownerID]; err != nil {
		return domain.PlaylistRef{}, err
	}
	return domain.PlaylistRef{ID: "pl-1", URL: "https://open.spotify.com/playlist/pl-1"}, nil
}

func (f *fakeCatalog) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, append([]string(nil), uris...))
	return nil
}

func (f *fakeCatalog) addedURIs() []string {
	var out []string
	for _, b := range f.added {
		out = append(out, b...)
	}
	return out
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// fakeRepo is an in-memory ports.WorkoutRepository.
type fakeRepo struct {
	mu       sync.Mutex
	workouts map[string]domain.Workout
	nextID   int
	err      error
}

var _ ports.WorkoutRepository = (*fakeRepo)(nil)

func newFakeRepo(workouts ...domain.Workout) *fakeRepo {
	r := &fakeRepo{workouts: map[string]domain.Workout{}}
	for _, w := range workouts {
		r.workouts[w.ID] = w
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return domain.Workout{}, r.err
	}
	w, ok := r.workouts[id]
	if !ok {
		return domain.Workout{}, domain.ErrNotFound
	}
	return w, nil
}

func (r *fakeRepo) List(_ context.Context) ([]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.Workout, 0, len(r.workouts))
	for _, w := range r.workouts {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeRepo) Create(_ context.Context, name, workoutType string) (domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	w, err := domain.NewWorkout(fmt.Sprintf("w-%d", r.nextID), name, workoutType)
	if err != nil {
		return domain.Workout{}, err
	}
	r.workouts[w.ID] = *w
	return *w, nil
}

func (r *fakeRepo) UpdateSections(_ context.Context, id string, sections []domain.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.workouts[id]
	if !ok {
		return domain.ErrNotFound
	}
	w.Sections = sections
	r.workouts[id] = w
	return nil
}
