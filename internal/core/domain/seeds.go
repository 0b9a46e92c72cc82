package domain

import "strings"

// Catalog seed limits.
const (
	MaxSeeds       = 5
	MaxSeedArtists = 2
	MaxSeedTracks  = 2
	MaxSeedGenres  = 1
)

// DefaultFallbackGenre is injected when no genre seed can be derived.
const DefaultFallbackGenre = "electronic"

// GenreKeywords is the set of genre keywords the catalog understands.
type GenreKeywords map[string]struct{}

// NewGenreKeywords builds a keyword set, lowercasing entries.
func NewGenreKeywords(keywords []string) GenreKeywords {
	set := make(GenreKeywords, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

// Has reports whether keyword is a known catalog genre.
func (g GenreKeywords) Has(keyword string) bool {
	_, ok := g[keyword]
	return ok
}

// SeedSet is the bounded taste seed for candidate discovery.
type SeedSet struct {
	Artists []string `json:"artists"`
	Tracks  []string `json:"tracks"`
	Genres  []string `json:"genres"`
}

// Total is the number of seeds across all kinds.
func (s SeedSet) Total() int {
	return len(s.Artists) + len(s.Tracks) + len(s.Genres)
}

// NormalizeGenres maps freeform genre tags onto known catalog keywords.
// Multi-word tags are tried hyphenated first ("jazz rap" -> "jazz-rap") and
// only split into individual words when the hyphenated form is unknown.
// Output is deduplicated in first-seen order.
func NormalizeGenres(raw []string, known GenreKeywords) []string {
	out := []string{}
	seen := map[string]struct{}{}
	add := func(g string) {
		if _, dup := seen[g]; dup {
			return
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}

	for _, tag := range raw {
		lower := strings.ToLower(strings.TrimSpace(tag))
		if lower == "" {
			continue
		}
		words := strings.Fields(lower)
		if len(words) == 1 && known.Has(lower) {
			add(lower)
			continue
		}
		if hyphenated := strings.Join(words, "-"); known.Has(hyphenated) {
			add(hyphenated)
			continue
		}
		for _, w := range words {
			if known.Has(w) {
				add(w)
			}
		}
	}
	return out
}

// SelectSeeds turns listening history into a SeedSet. Either list may be
// empty. The result always holds between 1 and MaxSeeds seeds.
func SelectSeeds(topArtists []Artist, topTracks []Track, known GenreKeywords, fallbackGenre string) SeedSet {
	if fallbackGenre == "" {
		fallbackGenre = DefaultFallbackGenre
	}

	seeds := SeedSet{Artists: []string{}, Tracks: []string{}, Genres: []string{}}
	for _, a := range topArtists {
		if len(seeds.Artists) == MaxSeedArtists {
			break
		}
		if a.ID != "" {
			seeds.Artists = append(seeds.Artists, a.ID)
		}
	}
	for _, t := range topTracks {
		if len(seeds.Tracks) == MaxSeedTracks {
			break
		}
		if t.ID != "" {
			seeds.Tracks = append(seeds.Tracks, t.ID)
		}
	}

	var rawGenres []string
	for _, a := range topArtists {
		rawGenres = append(rawGenres, a.Genres...)
	}
	genres := NormalizeGenres(rawGenres, known)

	remaining := MaxSeeds - len(seeds.Artists) - len(seeds.Tracks)
	if keep := min(remaining, MaxSeedGenres, len(genres)); keep > 0 {
		seeds.Genres = append(seeds.Genres, genres[:keep]...)
	}
	if len(seeds.Genres) == 0 && remaining > 0 {
		seeds.Genres = []string{fallbackGenre}
	}
	if seeds.Total() == 0 {
		seeds.Genres = []string{fallbackGenre}
	}
	return seeds
}
