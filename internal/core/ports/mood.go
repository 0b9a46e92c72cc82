package ports

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrMoodNotConfigured means no mood service URL was configured.
	ErrMoodNotConfigured = errors.New("mood service not configured")
	// ErrMoodEndpointNotFound means the configured URL answered 404.
	ErrMoodEndpointNotFound = errors.New("mood service endpoint not found")
)

// MoodClassifier forwards an opaque analysis request to the external mood
// service and returns its raw JSON reply with the upstream status.
type MoodClassifier interface {
	Classify(ctx context.Context, accessToken string, body json.RawMessage) (int, json.RawMessage, error)
}
