package services

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
	"github.com/ewilliams-labs/cadence/backend/internal/worker"
)

// historyLimit is how many top artists and top tracks seed a run.
const historyLimit = 5

// GeneratorConfig tunes a Generator.
type GeneratorConfig struct {
	Market        string
	FallbackGenre string
	Concurrency   int
	Keywords      domain.GenreKeywords
}

// Generator turns a stored workout into a catalog playlist.
type Generator struct {
	repo     ports.WorkoutRepository
	catalogs ports.CatalogFactory
	cfg      GeneratorConfig
	pool     *worker.Pool
	logger   *log.Logger
	now      func() time.Time
}

// NewGenerator constructs a Generator.
func NewGenerator(repo ports.WorkoutRepository, catalogs ports.CatalogFactory, cfg GeneratorConfig, logger *log.Logger) *Generator {
	if cfg.Market == "" {
		cfg.Market = "US"
	}
	if cfg.FallbackGenre == "" {
		cfg.FallbackGenre = domain.DefaultFallbackGenre
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		repo:     repo,
		catalogs: catalogs,
		cfg:      cfg,
		pool:     worker.NewPool(cfg.Concurrency),
		logger:   logger,
		now:      time.Now,
	}
}

// run carries the state of one GeneratePlaylist call.
type run struct {
	catalog ports.Catalog
	logger  *log.Logger
	pool    *worker.Pool
	market  string
	seeds   domain.SeedSet
	artists []string
}

// GeneratePlaylist builds a playlist for the workout and returns where it
// lives. Preconditions are checked before the catalog is contacted.
func (g *Generator) GeneratePlaylist(ctx context.Context, workoutID string, cred domain.Credential) (domain.PlaylistRef, error) {
	if err := cred.Validate(g.now()); err != nil {
		return domain.PlaylistRef{}, newGenerationError(KindPrecondition, "validate credential", err)
	}

	workout, err := g.repo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PlaylistRef{}, newGenerationError(KindPrecondition, "load workout", err)
		}
		return domain.PlaylistRef{}, newGenerationError(KindTerminal, "load workout", err)
	}
	if len(workout.Sections) == 0 {
		return domain.PlaylistRef{}, newGenerationError(KindPrecondition, "load workout", domain.ErrNoSections)
	}
	draft, err := domain.NewPlaylistDraft(workout)
	if err != nil {
		return domain.PlaylistRef{}, newGenerationError(KindPrecondition, "draft playlist", err)
	}

	r := &run{
		catalog: g.catalogs(ctx, cred),
		logger:  g.logger.With("run", uuid.NewString(), "workout", workout.ID),
		pool:    g.pool,
		market:  g.cfg.Market,
	}
	r.logger.Info("generating playlist", "sections", len(workout.Sections))

	if err := g.seed(ctx, r); err != nil {
		return domain.PlaylistRef{}, err
	}

	plans := make([]domain.SectionPlan, len(workout.Sections))
	for i, s := range workout.Sections {
		plan, ok := domain.PlanSection(i, s)
		if !ok {
			r.logger.Warn("unknown intensity, using default", "section", s.Name, "intensity", s.Intensity, "default", domain.DefaultIntensity)
		}
		plans[i] = plan
	}

	results := worker.Map(ctx, r.pool, plans, r.section)
	var uris []string
	for i, res := range results {
		if res.Err != nil {
			return domain.PlaylistRef{}, asGenerationError("match sections", res.Err)
		}
		r.logger.Debug("section matched", "index", i, "section", plans[i].Name, "tracks", len(res.Value), "desired", plans[i].Desired)
		for _, t := range res.Value {
			uris = append(uris, t.URI)
		}
	}
	if len(uris) == 0 {
		r.logger.Warn("every section starved, creating empty playlist")
	}

	ref, err := r.assemble(ctx, draft, uris)
	if err != nil {
		return domain.PlaylistRef{}, err
	}
	r.logger.Info("playlist generated", "playlist", ref.ID, "tracks", len(uris))
	return ref, nil
}

// seed reads listening history, selects seeds and expands seed artists.
func (g *Generator) seed(ctx context.Context, r *run) error {
	artists, err := fetch(ctx, r.logger, SourceTopArtists, func(ctx context.Context) ([]domain.Artist, error) {
		return r.catalog.TopArtists(ctx, historyLimit)
	}, nil)
	if err != nil {
		return err
	}
	tracks, err := fetch(ctx, r.logger, SourceTopTracks, func(ctx context.Context) ([]domain.Track, error) {
		return r.catalog.TopTracks(ctx, historyLimit)
	}, nil)
	if err != nil {
		return err
	}

	r.seeds = domain.SelectSeeds(artists, tracks, g.cfg.Keywords, g.cfg.FallbackGenre)
	r.logger.Debug("seeds selected", "artists", r.seeds.Artists, "tracks", r.seeds.Tracks, "genres", r.seeds.Genres)

	r.artists, err = r.expandArtists(ctx)
	return err
}

// section discovers and matches the tracks for one section. A starved
// section yields no tracks and no error.
func (r *run) section(ctx context.Context, plan domain.SectionPlan) ([]domain.Track, error) {
	candidates, err := r.candidates(ctx, plan)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		r.logger.Warn("section skipped", "kind", KindSectionStarved, "index", plan.Index, "section", plan.Name)
		return nil, nil
	}
	return r.match(ctx, plan, candidates)
}
