package domain

import (
	"errors"
	"fmt"
)

// MaxTracksPerAdd is the catalog's hard per-request limit for appending tracks.
const MaxTracksPerAdd = 100

// PlaylistDraft describes a playlist before it exists remotely.
type PlaylistDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// PlaylistRef identifies a created playlist.
type PlaylistRef struct {
	ID  string `json:"playlistId"`
	URL string `json:"playlistUrl"`
}

// UserProfile is the subset of the current user the assembler needs.
type UserProfile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
}

// OwnerID prefers the display name and falls back to the raw id.
func (u UserProfile) OwnerID() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.ID
}

// FallbackOwnerID returns the raw id when it differs from OwnerID.
func (u UserProfile) FallbackOwnerID() (string, bool) {
	if u.ID == "" || u.ID == u.OwnerID() {
		return "", false
	}
	return u.ID, true
}

// NewPlaylistDraft builds the draft for a generated workout playlist.
func NewPlaylistDraft(w Workout) (PlaylistDraft, error) {
	if w.Name == "" {
		return PlaylistDraft{}, errors.New("domain: workout name is empty")
	}
	return PlaylistDraft{
		Name:        fmt.Sprintf("%s • Auto-generated", w.Name),
		Description: fmt.Sprintf("Generated for %s workout via Cadence", w.Type),
		Public:      false,
	}, nil
}

// Batches splits uris into consecutive chunks of at most size, in order.
func Batches(uris []string, size int) [][]string {
	if size <= 0 {
		size = MaxTracksPerAdd
	}
	var out [][]string
	for start := 0; start < len(uris); start += size {
		end := min(start+size, len(uris))
		out = append(out, uris[start:end])
	}
	return out
}
