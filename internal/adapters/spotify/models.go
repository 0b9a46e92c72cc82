package spotify

import "github.com/ewilliams-labs/cadence/backend/internal/core/domain"

// spotifyUser is the /me payload.
type spotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

func (u spotifyUser) toDomain() domain.UserProfile {
	return domain.UserProfile{ID: u.ID, DisplayName: u.DisplayName}
}

type spotifyArtist struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

func (a spotifyArtist) toDomain() domain.Artist {
	return domain.Artist{ID: a.ID, Name: a.Name, Genres: a.Genres}
}

type spotifyTrack struct {
	ID   string `json:"id"`
	URI  string `json:"uri"`
	Name string `json:"name"`
}

func (t spotifyTrack) toDomain() domain.Track {
	uri := t.URI
	if uri == "" {
		uri = "spotify:track:" + t.ID
	}
	return domain.Track{ID: t.ID, URI: uri, Name: t.Name}
}

// spotifyAudioFeatures is one entry of /audio-features. Unknown ids come
// back as JSON null.
type spotifyAudioFeatures struct {
	ID      string  `json:"id"`
	Tempo   float64 `json:"tempo"`
	Energy  float64 `json:"energy"`
	Valence float64 `json:"valence"`
}

func (f spotifyAudioFeatures) toDomain() domain.AudioFeatures {
	return domain.AudioFeatures{ID: f.ID, Tempo: f.Tempo, Energy: f.Energy, Valence: f.Valence}
}

type pagingArtists struct {
	Items []*spotifyArtist `json:"items"`
}

type pagingTracks struct {
	Items []*spotifyTrack `json:"items"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

type createPlaylistResponse struct {
	ID           string `json:"id"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

// addTracksRequest represents the request body for appending tracks to a playlist.
type addTracksRequest struct {
	URIs []string `json:"uris"`
}

func mapArtists(in []*spotifyArtist) []domain.Artist {
	out := make([]domain.Artist, 0, len(in))
	for _, a := range in {
		if a == nil || a.ID == "" {
			continue
		}
		out = append(out, a.toDomain())
	}
	return out
}

// mapTracks drops null entries and tracks without an id (local files).
func mapTracks(in []*spotifyTrack) []domain.Track {
	out := make([]domain.Track, 0, len(in))
	for _, t := range in {
		if t == nil || t.ID == "" {
			continue
		}
		out = append(out, t.toDomain())
	}
	return out
}
