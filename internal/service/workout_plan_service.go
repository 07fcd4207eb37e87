package service

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrWorkoutPlanNotFound = errors.New("workout plan not found")
)

// CreateWorkoutPlanInput is a hand-written plan for one day.
type CreateWorkoutPlanInput struct {
	ClientID  string
	Day       time.Time
	PlanName  string
	Exercises []interface{}
}

type WorkoutPlanService interface {
	CreateWorkoutPlan(ctx context.Context, coachID string, in CreateWorkoutPlanInput) (*domain.WorkoutPlan, error)
	// ListWorkoutPlans returns the coach's plans, newest day first. An empty clientID lists all clients.
	ListWorkoutPlans(ctx context.Context, coachID, clientID string) ([]domain.WorkoutPlan, error)
	GetWorkoutPlan(ctx context.Context, coachID, planID string) (*domain.WorkoutPlan, error)
}

type workoutPlanService struct {
	planRepo   repository.WorkoutPlanRepository
	clientRepo repository.ClientRepository
}

func NewWorkoutPlanService(planRepo repository.WorkoutPlanRepository, clientRepo repository.ClientRepository) WorkoutPlanService {
	return &workoutPlanService{
		planRepo:   planRepo,
		clientRepo: clientRepo,
	}
}

// CreateWorkoutPlan stores a plan for one of the coach's own clients.
func (s *workoutPlanService) CreateWorkoutPlan(ctx context.Context, coachID string, in CreateWorkoutPlanInput) (*domain.WorkoutPlan, error) {
	var missing []string
	if strings.TrimSpace(in.ClientID) == "" {
		missing = append(missing, "clientId")
	}
	if in.Day.IsZero() {
		missing = append(missing, "day")
	}
	if strings.TrimSpace(in.PlanName) == "" {
		missing = append(missing, "planName")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	if _, err := s.clientRepo.GetByID(ctx, in.ClientID, coachID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	exercises := in.Exercises
	if exercises == nil {
		exercises = []interface{}{}
	}
	plan := &domain.WorkoutPlan{
		CoachID:   coachID,
		ClientID:  in.ClientID,
		Day:       in.Day.UTC(),
		PlanName:  strings.TrimSpace(in.PlanName),
		Exercises: exercises,
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *workoutPlanService) ListWorkoutPlans(ctx context.Context, coachID, clientID string) ([]domain.WorkoutPlan, error) {
	return s.planRepo.ListByCoach(ctx, coachID, repository.WorkoutPlanFilter{ClientID: clientID})
}

func (s *workoutPlanService) GetWorkoutPlan(ctx context.Context, coachID, planID string) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}
