package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("domain: not found")
	ErrNoSections = errors.New("domain: workout has no sections")
)

// Intensity is the coarse effort label of a workout section.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// DefaultIntensity is used when a section carries no usable intensity.
const DefaultIntensity = IntensityMedium

// ParseIntensity normalizes a raw intensity label. The boolean is false when
// the label was missing or unknown and DefaultIntensity was substituted.
func ParseIntensity(raw string) (Intensity, bool) {
	switch Intensity(strings.ToLower(strings.TrimSpace(raw))) {
	case IntensityLow:
		return IntensityLow, true
	case IntensityMedium:
		return IntensityMedium, true
	case IntensityHigh:
		return IntensityHigh, true
	default:
		return DefaultIntensity, false
	}
}

// Section is one block of a workout. Either Duration or the
// Rounds/Work/Rest interval triple describes how long it lasts.
type Section struct {
	Name      string    `json:"name" bson:"name" validate:"max=200"`
	Intensity Intensity `json:"intensity" bson:"intensity"`
	Duration  *int      `json:"duration,omitempty" bson:"duration,omitempty" validate:"omitempty,min=0,max=86400"` // seconds
	Rounds    *int      `json:"rounds,omitempty" bson:"rounds,omitempty" validate:"omitempty,min=0,max=1000"`
	Work      *int      `json:"work,omitempty" bson:"work,omitempty" validate:"omitempty,min=0,max=86400"` // seconds per round
	Rest      *int      `json:"rest,omitempty" bson:"rest,omitempty" validate:"omitempty,min=0,max=86400"` // seconds per round
}

// Workout is the document the playlist is generated for.
type Workout struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewWorkout creates a workout with no sections yet.
func NewWorkout(id, name, workoutType string) (*Workout, error) {
	if id == "" || name == "" || workoutType == "" {
		return nil, errors.New("domain: invalid argument")
	}
	return &Workout{
		ID:       id,
		Name:     name,
		Type:     workoutType,
		Sections: []Section{},
	}, nil
}
