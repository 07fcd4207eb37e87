package repository

import (
	"connectfitness/coach-api/internal/domain"
	"context"
)

var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
	ErrInvalidID = RepositoryError("invalid id")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository stores coach accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ClientRepository stores the clients each coach manages.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (string, error)
	// GetByID returns ErrNotFound unless the client exists and belongs to coachID.
	GetByID(ctx context.Context, id, coachID string) (*domain.Client, error)
	ListByCoach(ctx context.Context, coachID string) ([]domain.Client, error)
}

// WorkoutPlanFilter narrows ListByCoach. Empty fields are ignored.
type WorkoutPlanFilter struct {
	ClientID string
}

// WorkoutPlanRepository stores per-day workout plans.
// Create sets ID, CreatedAt and UpdatedAt on the passed plan.
type WorkoutPlanRepository interface {
	Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error)
	GetByID(ctx context.Context, id, coachID string) (*domain.WorkoutPlan, error)
	// ListByCoach returns plans ordered by day, newest first.
	ListByCoach(ctx context.Context, coachID string, filter WorkoutPlanFilter) ([]domain.WorkoutPlan, error)
}
