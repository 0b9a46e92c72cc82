package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

var testKeywords = domain.NewGenreKeywords([]string{"electronic", "house", "rock", "jazz-rap"})

func intPtr(v int) *int { return &v }

func tracks(prefix string, n int) []domain.Track {
	out := make([]domain.Track, n)
	for i := range out {
		id := fmt.Sprintf("%s%d", prefix, i+1)
		out[i] = domain.Track{ID: id, URI: "spotify:track:" + id}
	}
	return out
}

func uris(ts []domain.Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.URI
	}
	return out
}

// featuresFor gives every track the same descriptors.
func featuresFor(into map[string]domain.AudioFeatures, ts []domain.Track, tempo, energy, valence float64) {
	for _, t := range ts {
		into[t.ID] = domain.AudioFeatures{ID: t.ID, Tempo: tempo, Energy: energy, Valence: valence}
	}
}

type harness struct {
	catalog   *fakeCatalog
	repo      *fakeRepo
	gen       *Generator
	factoryOK bool
}

func newHarness(t *testing.T, catalog *fakeCatalog, workouts ...domain.Workout) *harness {
	t.Helper()
	h := &harness{catalog: catalog, repo: newFakeRepo(workouts...)}
	factory := func(_ context.Context, cred domain.Credential) ports.Catalog {
		h.factoryOK = true
		return catalog
	}
	h.gen = NewGenerator(h.repo, factory, GeneratorConfig{
		Market:        "US",
		FallbackGenre: "electronic",
		Concurrency:   3,
		Keywords:      testKeywords,
	}, log.New(io.Discard))
	return h
}

var validCred = domain.Credential{AccessToken: "token"}

func workout(sections ...domain.Section) domain.Workout {
	return domain.Workout{ID: "w1", Name: "Leg day", Type: "strength", Sections: sections}
}

func TestGeneratePlaylist_Preconditions(t *testing.T) {
	tests := []struct {
		name     string
		cred     domain.Credential
		workouts []domain.Workout
		id       string
		wantErr  error
	}{
		{
			name:    "missing token",
			cred:    domain.Credential{},
			id:      "w1",
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:    "expired token",
			cred:    domain.Credential{AccessToken: "token", ExpiresAt: time.Now().Add(-time.Minute)},
			id:      "w1",
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:    "workout not found",
			cred:    validCred,
			id:      "missing",
			wantErr: domain.ErrNotFound,
		},
		{
			name:     "workout without sections",
			cred:     validCred,
			workouts: []domain.Workout{workout()},
			id:       "w1",
			wantErr:  domain.ErrNoSections,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakeCatalog{}, tt.workouts...)

			_, err := h.gen.GeneratePlaylist(context.Background(), tt.id, tt.cred)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindPrecondition, kind)
			assert.False(t, h.factoryOK, "catalog must not be built on precondition failure")
		})
	}
}

func TestGeneratePlaylist_SectionOrder(t *testing.T) {
	low := tracks("low", 10)
	high := tracks("high", 10)
	features := map[string]domain.AudioFeatures{}
	featuresFor(features, low, 95, 0.3, 0.45)
	featuresFor(features, high, 150, 0.9, 0.8)

	catalog := &fakeCatalog{
		user:         domain.UserProfile{ID: "u1", DisplayName: "Runner"},
		topArtists:   []domain.Artist{{ID: "a1", Genres: []string{"house"}}},
		artistTracks: map[string][]domain.Track{"a1": append(append([]domain.Track{}, high...), low...)},
		features:     features,
	}
	w := workout(
		domain.Section{Name: "warm-up", Intensity: domain.IntensityLow, Duration: intPtr(300)},
		domain.Section{Name: "intervals", Intensity: domain.IntensityHigh, Rounds: intPtr(3), Work: intPtr(40), Rest: intPtr(20)},
	)
	h := newHarness(t, catalog, w)

	ref, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)
	assert.Equal(t, "pl-1", ref.ID)

	want := append(uris(low[:5]), uris(high[:5])...)
	assert.Equal(t, want, catalog.addedURIs())
	assert.Len(t, catalog.added, 1)
	assert.Empty(t, catalog.searches, "pool of 20 covers 2x5 so no genre search")
	assert.Equal(t, []string{"Runner"}, catalog.createOwners)
}

func TestGeneratePlaylist_EmptyHistoryUsesFallbackGenre(t *testing.T) {
	found := tracks("s", 12)
	features := map[string]domain.AudioFeatures{}
	featuresFor(features, found, 120, 0.55, 0.5)

	catalog := &fakeCatalog{
		user:          domain.UserProfile{ID: "u1"},
		searchResults: found,
		features:      features,
	}
	h := newHarness(t, catalog, workout(domain.Section{Name: "main", Intensity: domain.IntensityMedium}))

	_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)

	assert.Equal(t, []string{"genre:electronic"}, catalog.searches)
	assert.Empty(t, catalog.relatedCalls)
	assert.Empty(t, catalog.artistTrackCalls)
	assert.Equal(t, uris(found[:5]), catalog.addedURIs())
}

func TestGeneratePlaylist_RelatedExpansion(t *testing.T) {
	related := func(prefix string) []domain.Artist {
		var out []domain.Artist
		for i := 1; i <= 4; i++ {
			out = append(out, domain.Artist{ID: fmt.Sprintf("%s%d", prefix, i)})
		}
		return out
	}
	catalog := &fakeCatalog{
		user:       domain.UserProfile{ID: "u1"},
		topArtists: []domain.Artist{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}},
		related:    map[string][]domain.Artist{"a1": related("r"), "a2": related("q")},
	}
	h := newHarness(t, catalog, workout(domain.Section{Name: "main"}))

	_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2"}, sorted(catalog.relatedCalls))
	// Expanded list is a1 a2 r1 r2 r3 q1 q2 q3; only the first five are mined.
	assert.Equal(t, []string{"a1", "a2", "r1", "r2", "r3"}, sorted(catalog.artistTrackCalls))
}

func TestGeneratePlaylist_FeatureLookupCappedAtFirstHundred(t *testing.T) {
	artistTracks := map[string][]domain.Track{}
	var pool []domain.Track
	for _, id := range []string{"a1", "a2", "r1", "r2", "r3"} {
		artistTracks[id] = tracks(id+"-t", 30)
		pool = append(pool, artistTracks[id]...)
	}
	features := map[string]domain.AudioFeatures{}
	featuresFor(features, pool, 120, 0.55, 0.5)

	catalog := &fakeCatalog{
		user:         domain.UserProfile{ID: "u1"},
		topArtists:   []domain.Artist{{ID: "a1"}, {ID: "a2"}},
		related:      map[string][]domain.Artist{"a1": {{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}},
		artistTracks: artistTracks,
		features:     features,
	}
	h := newHarness(t, catalog, workout(domain.Section{Name: "main", Intensity: domain.IntensityMedium}))

	_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)

	require.Len(t, pool, 150)
	require.Len(t, catalog.featureRequests, 1)
	assert.Len(t, catalog.featureRequests[0], domain.MaxFeatureBatch)
	assert.Equal(t, domain.TrackIDs(pool[:domain.MaxFeatureBatch]), catalog.featureRequests[0])
	assert.Empty(t, catalog.searches)
}

func TestGeneratePlaylist_WarnsOnDefaultedIntensity(t *testing.T) {
	catalog := &fakeCatalog{user: domain.UserProfile{ID: "u1"}}
	repo := newFakeRepo(workout(domain.Section{Name: "finisher", Intensity: "extreme"}))
	factory := func(context.Context, domain.Credential) ports.Catalog { return catalog }

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	gen := NewGenerator(repo, factory, GeneratorConfig{Keywords: testKeywords}, logger)

	_, err := gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "unknown intensity")
	assert.Contains(t, out, "finisher")
}

func TestGeneratePlaylist_FeatureFailureFallsBackToRawCandidates(t *testing.T) {
	pool := tracks("t", 8)
	catalog := &fakeCatalog{
		user:         domain.UserProfile{ID: "u1"},
		topArtists:   []domain.Artist{{ID: "a1"}},
		artistTracks: map[string][]domain.Track{"a1": pool},
		searchErr:    catalogErr("search tracks", http.StatusServiceUnavailable),
		featuresErr:  catalogErr("audio features", http.StatusForbidden),
	}
	h := newHarness(t, catalog, workout(domain.Section{Name: "main", Intensity: domain.IntensityHigh}))

	_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)
	assert.Equal(t, uris(pool[:5]), catalog.addedURIs())
}

func TestGeneratePlaylist_DegradedSourcesContinue(t *testing.T) {
	good := tracks("g", 6)
	features := map[string]domain.AudioFeatures{}
	featuresFor(features, good, 120, 0.55, 0.5)

	catalog := &fakeCatalog{
		user:            domain.UserProfile{ID: "u1"},
		topArtists:      []domain.Artist{{ID: "a1"}, {ID: "a2"}},
		topTracksErr:    catalogErr("top tracks", http.StatusInternalServerError),
		relatedErr:      map[string]error{"a1": errors.New("timeout"), "a2": errors.New("timeout")},
		artistTracks:    map[string][]domain.Track{"a2": good},
		artistTracksErr: map[string]error{"a1": catalogErr("artist top tracks", http.StatusNotFound)},
		searchErr:       catalogErr("search tracks", http.StatusBadRequest),
		features:        features,
	}
	h := newHarness(t, catalog, workout(domain.Section{Name: "main"}))

	_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)
	assert.Equal(t, uris(good[:5]), catalog.addedURIs())
	assert.Equal(t, []string{"genre:electronic"}, catalog.searches)
}

func TestGeneratePlaylist_AllSectionsStarved(t *testing.T) {
	catalog := &fakeCatalog{user: domain.UserProfile{ID: "u1"}}
	h := newHarness(t, catalog, workout(domain.Section{Name: "a"}, domain.Section{Name: "b"}))

	ref, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)
	assert.Equal(t, "pl-1", ref.ID)
	assert.Empty(t, catalog.added)
	assert.Empty(t, catalog.featureRequests)
}

func TestGeneratePlaylist_BatchesAppends(t *testing.T) {
	pool := tracks("t", 25)
	features := map[string]domain.AudioFeatures{}
	featuresFor(features, pool, 120, 0.55, 0.5)

	catalog := &fakeCatalog{
		user:         domain.UserProfile{ID: "u1"},
		topArtists:   []domain.Artist{{ID: "a1"}},
		artistTracks: map[string][]domain.Track{"a1": pool},
		features:     features,
	}
	long := domain.Section{Name: "long", Intensity: domain.IntensityMedium, Duration: intPtr(20 * 210)}
	h := newHarness(t, catalog, workout(long, long, long, long, long, long))

	_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
	require.NoError(t, err)
	require.Len(t, catalog.added, 2)
	assert.Len(t, catalog.added[0], 100)
	assert.Len(t, catalog.added[1], 20)
}

func TestGeneratePlaylist_CreatePlaylistFallback(t *testing.T) {
	tests := []struct {
		name       string
		user       domain.UserProfile
		createErr  map[string]error
		wantOwners []string
		wantStatus int
	}{
		{
			name:       "permission failure without distinct id is terminal",
			user:       domain.UserProfile{ID: "u1"},
			createErr:  map[string]error{"u1": catalogErr("create playlist", http.StatusForbidden)},
			wantOwners: []string{"u1"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "not found under display name retries with raw id",
			user:       domain.UserProfile{ID: "u1", DisplayName: "Runner"},
			createErr:  map[string]error{"Runner": catalogErr("create playlist", http.StatusNotFound)},
			wantOwners: []string{"Runner", "u1"},
		},
		{
			name:       "unauthorized is not retried",
			user:       domain.UserProfile{ID: "u1", DisplayName: "Runner"},
			createErr:  map[string]error{"Runner": catalogErr("create playlist", http.StatusUnauthorized)},
			wantOwners: []string{"Runner"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "fallback failure surfaces",
			user: domain.UserProfile{ID: "u1", DisplayName: "Runner"},
			createErr: map[string]error{
				"Runner": catalogErr("create playlist", http.StatusForbidden),
				"u1":     catalogErr("create playlist", http.StatusForbidden),
			},
			wantOwners: []string{"Runner", "u1"},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{user: tt.user, createErr: tt.createErr}
			h := newHarness(t, catalog, workout(domain.Section{Name: "main"}))

			_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
			assert.Equal(t, tt.wantOwners, catalog.createOwners)
			if tt.wantStatus == 0 {
				require.NoError(t, err)
				return
			}

			var ge *GenerationError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, KindTerminal, ge.Kind)
			assert.Equal(t, "create playlist", ge.Op)
			assert.Equal(t, tt.wantStatus, ge.StatusCode)
			assert.Contains(t, err.Error(), "create playlist")
		})
	}
}

func TestGeneratePlaylist_TerminalFailures(t *testing.T) {
	pool := tracks("t", 5)
	features := map[string]domain.AudioFeatures{}
	featuresFor(features, pool, 120, 0.55, 0.5)

	tests := []struct {
		name   string
		mutate func(*fakeCatalog)
		wantOp string
	}{
		{
			name:   "current user lookup",
			mutate: func(c *fakeCatalog) { c.userErr = catalogErr("current user", http.StatusUnauthorized) },
			wantOp: "current user",
		},
		{
			name:   "append batch",
			mutate: func(c *fakeCatalog) { c.addErr = catalogErr("add tracks", http.StatusBadGateway) },
			wantOp: "add tracks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &fakeCatalog{
				user:         domain.UserProfile{ID: "u1"},
				topArtists:   []domain.Artist{{ID: "a1"}},
				artistTracks: map[string][]domain.Track{"a1": pool},
				features:     features,
			}
			tt.mutate(catalog)
			h := newHarness(t, catalog, workout(domain.Section{Name: "main"}))

			_, err := h.gen.GeneratePlaylist(context.Background(), "w1", validCred)
			var ge *GenerationError
			require.ErrorAs(t, err, &ge)
			assert.Equal(t, KindTerminal, ge.Kind)
			assert.Equal(t, tt.wantOp, ge.Op)
			assert.NotZero(t, ge.StatusCode)
		})
	}
}

func TestGeneratePlaylist_Canceled(t *testing.T) {
	catalog := &fakeCatalog{user: domain.UserProfile{ID: "u1"}}
	h := newHarness(t, catalog, workout(domain.Section{Name: "main"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.gen.GeneratePlaylist(ctx, "w1", validCred)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, catalog.currentUserCalled)
	assert.Empty(t, catalog.createOwners)
}

func TestSourcePolicies(t *testing.T) {
	tests := []struct {
		src  Source
		want Policy
	}{
		{SourceTopArtists, PolicySubstituteEmpty},
		{SourceTopTracks, PolicySubstituteEmpty},
		{SourceRelatedArtists, PolicySubstituteEmpty},
		{SourceArtistTopTracks, PolicySubstituteEmpty},
		{SourceGenreSearch, PolicySubstituteEmpty},
		{SourceAudioFeatures, PolicySubstituteFallback},
		{SourceCurrentUser, PolicyAbort},
		{SourceCreatePlaylist, PolicyAbort},
		{SourceAddTracks, PolicyAbort},
	}
	for _, tt := range tests {
		t.Run(tt.src.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyFor(tt.src))
		})
	}
}
