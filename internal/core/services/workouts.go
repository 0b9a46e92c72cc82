package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

// ErrInvalidInput marks caller mistakes in workout edits.
var ErrInvalidInput = errors.New("service: invalid input")

// WorkoutService manages the workouts playlists are generated from.
type WorkoutService struct {
	repo     ports.WorkoutRepository
	validate *validator.Validate
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(repo ports.WorkoutRepository) *WorkoutService {
	return &WorkoutService{
		repo:     repo,
		validate: validator.New(),
	}
}

type newWorkout struct {
	Name string `validate:"required,max=200"`
	Type string `validate:"required,max=100"`
}

// CreateWorkout stores a new workout with no sections.
func (s *WorkoutService) CreateWorkout(ctx context.Context, name, workoutType string) (domain.Workout, error) {
	in := newWorkout{Name: strings.TrimSpace(name), Type: strings.TrimSpace(workoutType)}
	if err := s.validate.Struct(in); err != nil {
		return domain.Workout{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	w, err := s.repo.Create(ctx, in.Name, in.Type)
	if err != nil {
		return domain.Workout{}, fmt.Errorf("service: failed to create workout: %w", err)
	}
	return w, nil
}

// GetWorkout loads a workout by id.
func (s *WorkoutService) GetWorkout(ctx context.Context, id string) (domain.Workout, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Workout{}, fmt.Errorf("service: failed to load workout: %w", err)
	}
	return w, nil
}

// ListWorkouts returns every stored workout, oldest first.
func (s *WorkoutService) ListWorkouts(ctx context.Context) ([]domain.Workout, error) {
	workouts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list workouts: %w", err)
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

// ReplaceSections overwrites a workout's sections and returns the result.
// Intensities are normalized; unknown labels are kept as given and fall
// back to the default at generation time.
func (s *WorkoutService) ReplaceSections(ctx context.Context, id string, sections []domain.Section) (domain.Workout, error) {
	clean := make([]domain.Section, len(sections))
	for i, sec := range sections {
		if err := s.validate.Struct(sec); err != nil {
			return domain.Workout{}, fmt.Errorf("%w: section %d: %v", ErrInvalidInput, i, err)
		}
		sec.Name = strings.TrimSpace(sec.Name)
		if intensity, ok := domain.ParseIntensity(string(sec.Intensity)); ok {
			sec.Intensity = intensity
		}
		clean[i] = sec
	}

	if err := s.repo.UpdateSections(ctx, id, clean); err != nil {
		return domain.Workout{}, fmt.Errorf("service: failed to update sections: %w", err)
	}
	return s.GetWorkout(ctx, id)
}
