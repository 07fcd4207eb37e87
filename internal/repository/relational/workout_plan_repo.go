package relational

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type workoutPlanRepository struct {
	db *gorm.DB
}

func NewWorkoutPlanRepository(db *gorm.DB) repository.WorkoutPlanRepository {
	return &workoutPlanRepository{db: db}
}

// Create inserts one plan in its own statement; callers writing several days
// get no all-or-nothing guarantee.
func (r *workoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error) {
	if plan.CoachID == "" || plan.ClientID == "" || plan.PlanName == "" {
		return "", errors.New("workout plan requires coachId, clientId, and planName")
	}
	exercises := plan.Exercises
	if exercises == nil {
		exercises = []interface{}{}
	}
	payload, err := json.Marshal(exercises)
	if err != nil {
		return "", fmt.Errorf("encoding exercises: %w", err)
	}

	row := workoutPlanRow{
		CoachID:   plan.CoachID,
		ClientID:  plan.ClientID,
		Day:       plan.Day.UTC(),
		PlanName:  plan.PlanName,
		Exercises: datatypes.JSON(payload),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", translate(err)
	}
	plan.ID = row.ID
	plan.Exercises = exercises
	plan.CreatedAt = row.CreatedAt
	plan.UpdatedAt = row.UpdatedAt
	return row.ID, nil
}

func (r *workoutPlanRepository) GetByID(ctx context.Context, id, coachID string) (*domain.WorkoutPlan, error) {
	var row workoutPlanRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND coach_id = ?", id, coachID).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	p, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *workoutPlanRepository) ListByCoach(ctx context.Context, coachID string, f repository.WorkoutPlanFilter) ([]domain.WorkoutPlan, error) {
	q := r.db.WithContext(ctx).Where("coach_id = ?", coachID)
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	var rows []workoutPlanRow
	if err := q.Order("day DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	plans := make([]domain.WorkoutPlan, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}
