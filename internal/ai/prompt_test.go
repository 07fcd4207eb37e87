package ai

import (
	"strings"
	"testing"
)

func TestBuildWorkoutPrompt(t *testing.T) {
	p := BuildWorkoutPrompt(" hypertrophy ", "dumbbells", 3)
	for _, want := range []string{
		"elite strength coach",
		"Create a 3-day workout program",
		`goal is "hypertrophy"`,
		"Equipment: dumbbells.",
		`exactly 3 entries in "days"`,
		"Do not wrap it in markdown code fences",
		`"days": [`,
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q:\n%s", want, p)
		}
	}
	if BuildWorkoutPrompt("a", "b", 2) != BuildWorkoutPrompt("a", "b", 2) {
		t.Error("prompt is not deterministic")
	}
}

func TestBuildWorkoutPromptExampleParses(t *testing.T) {
	p := BuildWorkoutPrompt("strength", "barbell", 1)
	candidate, err := ExtractJSON(p)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	doc, err := ParseLenient(candidate)
	if err != nil {
		t.Fatalf("example shape in the prompt does not parse: %v", err)
	}
	if _, err := DecodePlan(doc); err != nil {
		t.Fatalf("DecodePlan: %v", err)
	}
}
