package service

import (
	"sort"
	"strings"
)

// ValidationError reports request fields that are missing or unusable.
// It is always the caller's fault and safe to show to them.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "missing fields: " + strings.Join(e.Fields, ", ")
}

// missingOf lists the names whose values are blank, sorted for stable messages.
func missingOf(values map[string]string) []string {
	var missing []string
	for name, v := range values {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
