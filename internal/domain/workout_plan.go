package domain

import "time"

// WorkoutPlan is one day's plan for one client.
type WorkoutPlan struct {
	ID       string    `json:"id"`
	CoachID  string    `json:"coachId"`
	ClientID string    `json:"clientId"`
	Day      time.Time `json:"day"`
	PlanName string    `json:"planName"`
	// Exercises is stored and returned as-is. Items are usually objects with
	// name, sets, reps, rest and optional videoUrl/notes, but nothing enforces it.
	Exercises []interface{} `json:"exercises"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
