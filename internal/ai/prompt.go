package ai

import (
	"fmt"
	"strings"
)

const workoutPromptTemplate = `You are an elite strength coach.
Create a %d-day workout program for a client whose goal is "%s".
Equipment: %s.
The program must have exactly %d entries in "days" and only use the equipment listed.
Return ONLY a JSON object shaped like the example below. Do not wrap it in markdown code fences.

{
  "days": [
    {
      "title": "Day 1 - Upper Push",
      "exercises": [
        { "name": "Dumbbell Bench Press", "sets": 4, "reps": "8-10", "rest": 90, "notes": "" }
      ]
    }
  ]
}`

// BuildWorkoutPrompt renders the instruction sent to the model for one generation call.
func BuildWorkoutPrompt(goal, equipment string, daysPerWeek int) string {
	return fmt.Sprintf(workoutPromptTemplate,
		daysPerWeek,
		strings.TrimSpace(goal),
		strings.TrimSpace(equipment),
		daysPerWeek,
	)
}
