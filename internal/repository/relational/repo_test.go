package relational

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := Open("sqlite", dsn, gormLogger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn", gormLogger.Silent); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(testDB(t))

	u := &domain.User{Name: "Coach", Email: "coach@example.com", PasswordHash: "hash", Role: domain.RoleCoach}
	id, err := repo.Create(ctx, u)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" || u.ID != id || u.CreatedAt.IsZero() {
		t.Fatalf("Create did not populate the user: %+v", u)
	}

	byEmail, err := repo.GetByEmail(ctx, "coach@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != id || byEmail.PasswordHash != "hash" || byEmail.Role != domain.RoleCoach {
		t.Errorf("GetByEmail = %+v", byEmail)
	}

	if _, err := repo.GetByID(ctx, id); err != nil {
		t.Errorf("GetByID: %v", err)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID(missing) err = %v, want ErrNotFound", err)
	}

	dup := &domain.User{Name: "Other", Email: "coach@example.com", PasswordHash: "x", Role: domain.RoleCoach}
	if _, err := repo.Create(ctx, dup); !errors.Is(err, repository.ErrDuplicate) {
		t.Errorf("duplicate email err = %v, want ErrDuplicate", err)
	}
}

func TestClientRepositoryScopesByCoach(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository(testDB(t))

	a := &domain.Client{CoachID: "coach-a", Name: "Ann", Phone: "555-0100"}
	if _, err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	b := &domain.Client{CoachID: "coach-b", Name: "Bob", Phone: "555-0101", Email: "bob@example.com"}
	if _, err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID, "coach-a")
	if err != nil || got.Name != "Ann" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	if _, err := repo.GetByID(ctx, a.ID, "coach-b"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("other coach's client err = %v, want ErrNotFound", err)
	}

	list, err := repo.ListByCoach(ctx, "coach-b")
	if err != nil {
		t.Fatalf("ListByCoach: %v", err)
	}
	if len(list) != 1 || list[0].Email != "bob@example.com" {
		t.Errorf("ListByCoach = %+v", list)
	}

	if _, err := repo.Create(ctx, &domain.Client{CoachID: "coach-a"}); err == nil {
		t.Error("expected error for client without a name")
	}
}

func TestWorkoutPlanRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkoutPlanRepository(testDB(t))
	base := time.Date(2025, 1, 6, 8, 30, 0, 0, time.UTC)

	exercises := []interface{}{
		map[string]interface{}{"name": "Bench", "sets": float64(3), "reps": "8-10", "rest": float64(60)},
	}
	for i, name := range []string{"Day 1", "Day 2", "Day 3"} {
		p := &domain.WorkoutPlan{
			CoachID:   "coach-a",
			ClientID:  "client-1",
			Day:       base.AddDate(0, 0, i),
			PlanName:  name,
			Exercises: exercises,
		}
		if _, err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
		if p.ID == "" {
			t.Fatalf("Create did not set ID")
		}
	}
	other := &domain.WorkoutPlan{CoachID: "coach-a", ClientID: "client-2", Day: base, PlanName: "Solo"}
	if _, err := repo.Create(ctx, other); err != nil {
		t.Fatal(err)
	}
	if other.Exercises == nil {
		t.Error("nil exercises should be stored as an empty list")
	}

	list, err := repo.ListByCoach(ctx, "coach-a", repository.WorkoutPlanFilter{ClientID: "client-1"})
	if err != nil {
		t.Fatalf("ListByCoach: %v", err)
	}
	var names []string
	for _, p := range list {
		names = append(names, p.PlanName)
	}
	if !reflect.DeepEqual(names, []string{"Day 3", "Day 2", "Day 1"}) {
		t.Fatalf("ListByCoach order = %v, want newest day first", names)
	}
	if !reflect.DeepEqual(list[2].Exercises, exercises) {
		t.Errorf("exercises round trip = %#v", list[2].Exercises)
	}
	if !list[2].Day.Equal(base) {
		t.Errorf("day = %v, want %v", list[2].Day, base)
	}

	all, err := repo.ListByCoach(ctx, "coach-a", repository.WorkoutPlanFilter{})
	if err != nil || len(all) != 4 {
		t.Fatalf("unfiltered list = %d plans, %v", len(all), err)
	}

	got, err := repo.GetByID(ctx, other.ID, "coach-a")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PlanName != "Solo" || len(got.Exercises) != 0 || got.Exercises == nil {
		t.Errorf("GetByID = %+v", got)
	}
	if _, err := repo.GetByID(ctx, other.ID, "coach-b"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("other coach err = %v, want ErrNotFound", err)
	}
}
