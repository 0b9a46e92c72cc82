package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

// defaultGenreKeywords are the genre seeds the catalog accepts for
// genre-scoped search.
var defaultGenreKeywords = []string{
	"acoustic", "afrobeat", "alt-rock", "alternative", "ambient", "anime", "black-metal", "bluegrass", "blues",
	"bossanova", "brazil", "breakbeat", "british", "cantopop", "chicago-house", "children", "chill", "classical",
	"club", "comedy", "country", "dance", "dancehall", "death-metal", "deep-house", "detroit-techno", "disco",
	"disney", "drum-and-bass", "dub", "dubstep", "edm", "electro", "electronic", "emo", "folk", "forro",
	"french", "funk", "garage", "german", "gospel", "goth", "grindcore", "groove", "grunge", "guitar",
	"happy", "hard-rock", "hardcore", "hardstyle", "heavy-metal", "hip-hop", "holidays", "honky-tonk", "house",
	"idm", "indian", "indie", "indie-pop", "industrial", "iranian", "j-dance", "j-idol", "j-pop", "j-rock",
	"jazz", "k-pop", "kids", "latin", "latino", "malay", "mandopop", "metal", "metal-misc", "metalcore",
	"minimal-techno", "movies", "new-age", "new-release", "opera", "pagode", "party", "philippines-opm",
	"piano", "pop", "pop-film", "post-dubstep", "power-pop", "progressive-house", "psych-rock", "punk", "punk-rock",
	"r-n-b", "rainy-day", "reggae", "reggaeton", "road-trip", "rock", "rock-n-roll", "rockabilly", "romance",
	"sad", "salsa", "samba", "sertanejo", "show-tunes", "singer-songwriter", "ska", "sleep", "songwriter",
	"soul", "soundtracks", "spanish", "study", "summer", "swedish", "synth-pop", "tango", "techno", "trance",
	"trip-hop", "turkish", "work-out", "world-music",
}

// DefaultGenreKeywords returns the built-in genre keyword set.
func DefaultGenreKeywords() domain.GenreKeywords {
	return domain.NewGenreKeywords(defaultGenreKeywords)
}

// LoadGenreKeywords reads a JSON array of genre keywords from path. An
// empty path yields the built-in set.
func LoadGenreKeywords(path string) (domain.GenreKeywords, error) {
	if path == "" {
		return DefaultGenreKeywords(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read genre keywords: %w", err)
	}
	var keywords []string
	if err := json.Unmarshal(data, &keywords); err != nil {
		return nil, fmt.Errorf("config: parse genre keywords %s: %w", path, err)
	}
	set := domain.NewGenreKeywords(keywords)
	if len(set) == 0 {
		return nil, fmt.Errorf("config: genre keywords %s: empty list", path)
	}
	return set, nil
}
