package ports

import (
	"context"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

type WorkoutRepository interface {
	GetByID(ctx context.Context, id string) (domain.Workout, error)
	// List returns every workout with its sections, oldest first.
	List(ctx context.Context) ([]domain.Workout, error)
	Create(ctx context.Context, name, workoutType string) (domain.Workout, error)
	UpdateSections(ctx context.Context, id string, sections []domain.Section) error
}
