package relational

import (
	"connectfitness/coach-api/internal/domain"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type userRow struct {
	ID           string      `gorm:"primaryKey;size:36"`
	Name         string      `gorm:"size:255"`
	Email        string      `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string      `gorm:"not null"`
	Role         domain.Role `gorm:"size:32;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type clientRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	CoachID   string `gorm:"size:64;index;not null"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255"`
	Phone     string `gorm:"size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (clientRow) TableName() string { return "clients" }

func (r *clientRow) toDomain() domain.Client {
	return domain.Client{
		ID:        r.ID,
		CoachID:   r.CoachID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type workoutPlanRow struct {
	ID        string         `gorm:"primaryKey;size:36"`
	CoachID   string         `gorm:"size:64;index:idx_workout_plans_coach_day,priority:1;not null"`
	ClientID  string         `gorm:"size:64;index;not null"`
	Day       time.Time      `gorm:"index:idx_workout_plans_coach_day,priority:2;not null"`
	PlanName  string         `gorm:"size:255;not null"`
	Exercises datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (workoutPlanRow) TableName() string { return "workout_plans" }

func (r *workoutPlanRow) toDomain() (domain.WorkoutPlan, error) {
	exercises := []interface{}{}
	if len(r.Exercises) > 0 {
		if err := json.Unmarshal(r.Exercises, &exercises); err != nil {
			return domain.WorkoutPlan{}, fmt.Errorf("decoding exercises of plan %s: %w", r.ID, err)
		}
		if exercises == nil {
			exercises = []interface{}{}
		}
	}
	return domain.WorkoutPlan{
		ID:        r.ID,
		CoachID:   r.CoachID,
		ClientID:  r.ClientID,
		Day:       r.Day.UTC(),
		PlanName:  r.PlanName,
		Exercises: exercises,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// assignID gives a row a random UUID key unless one is already set.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (r *userRow) BeforeCreate(*gorm.DB) error        { assignID(&r.ID); return nil }
func (r *clientRow) BeforeCreate(*gorm.DB) error      { assignID(&r.ID); return nil }
func (r *workoutPlanRow) BeforeCreate(*gorm.DB) error { assignID(&r.ID); return nil }
