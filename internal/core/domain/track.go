package domain

// Track is a catalog track as discovery returns it.
type Track struct {
	ID   string `json:"id"`
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

// Artist is a catalog artist with its freeform genre tags.
type Artist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// AudioFeatures holds the numeric descriptors used for matching.
type AudioFeatures struct {
	ID      string  `json:"id"`
	Tempo   float64 `json:"tempo"`
	Energy  float64 `json:"energy"`
	Valence float64 `json:"valence"`
}

// Valid reports whether the record carries usable data.
func (f AudioFeatures) Valid() bool {
	return f.ID != "" && f.Tempo > 0
}

// DedupeTracks removes repeated ids, keeping the first occurrence in order.
func DedupeTracks(tracks []Track) []Track {
	seen := make(map[string]struct{}, len(tracks))
	out := make([]Track, 0, len(tracks))
	for _, t := range tracks {
		if t.ID == "" {
			continue
		}
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}

// TrackIDs returns the ids of tracks in order.
func TrackIDs(tracks []Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
