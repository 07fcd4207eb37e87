package service

import (
	"connectfitness/coach-api/internal/ai"
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrStorageFailure wraps any failure to persist generated plans.
var ErrStorageFailure = errors.New("failed to save workout plans")

// MaterializeError reports a batch where at least one day failed to save.
// Days that did save stay saved; Saved lists them in day order.
type MaterializeError struct {
	Saved []domain.WorkoutPlan
	Total int
	Err   error
}

func (e *MaterializeError) Error() string {
	return fmt.Sprintf("%s: %d of %d days saved: %v", ErrStorageFailure, len(e.Saved), e.Total, e.Err)
}

func (e *MaterializeError) Unwrap() error { return e.Err }

func (e *MaterializeError) Is(target error) bool { return target == ErrStorageFailure }

// planMaterializer turns a parsed program into one stored WorkoutPlan per day.
type planMaterializer struct {
	plans repository.WorkoutPlanRepository
}

// Materialize schedules day idx at now+idx calendar days (UTC) and writes
// every day concurrently. The result follows day order, not completion
// order. Writes are independent: a failed day does not undo the others.
func (m *planMaterializer) Materialize(ctx context.Context, plan *ai.ParsedPlan, coachID, clientID string, now time.Time) ([]domain.WorkoutPlan, error) {
	start := now.UTC()
	records := make([]domain.WorkoutPlan, len(plan.Days))
	for idx, d := range plan.Days {
		records[idx] = domain.WorkoutPlan{
			CoachID:   coachID,
			ClientID:  clientID,
			Day:       start.AddDate(0, 0, idx),
			PlanName:  d.Title,
			Exercises: d.Exercises,
		}
	}

	saved := make([]bool, len(records))
	var g errgroup.Group
	for idx := range records {
		idx := idx // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			if _, err := m.plans.Create(ctx, &records[idx]); err != nil {
				return fmt.Errorf("day %d: %w", idx+1, err)
			}
			saved[idx] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var kept []domain.WorkoutPlan
		for idx, ok := range saved {
			if ok {
				kept = append(kept, records[idx])
			}
		}
		return nil, &MaterializeError{Saved: kept, Total: len(records), Err: err}
	}
	return records, nil
}
