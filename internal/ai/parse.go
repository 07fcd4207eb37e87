package ai

import (
	"errors"
	"fmt"
	"math"

	"github.com/titanous/json5"
)

// ErrMalformedResponse matches any failure to turn model output into a plan.
var ErrMalformedResponse = errors.New("malformed model response")

// MalformedResponseError carries the offending model text for server-side
// logging. Raw must never be sent back to API callers.
type MalformedResponseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrMalformedResponse, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedResponse, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// ParsedPlan is the program the model returned, days in the order given.
type ParsedPlan struct {
	Days []DayPlan
}

// DayPlan is one day of a generated program. Exercises are left untyped.
type DayPlan struct {
	Title     string
	Exercises []interface{}
}

// ParseLenient decodes candidate with the JSON5 grammar: unquoted and
// single-quoted keys, trailing commas, comments, hex numbers, Infinity and
// NaN. The result contains only maps, slices, strings, float64, bool and nil.
func ParseLenient(candidate string) (interface{}, error) {
	var doc interface{}
	if err := json5.Unmarshal([]byte(candidate), &doc); err != nil {
		reason := "invalid JSON5"
		var syntaxErr *json5.SyntaxError
		if errors.As(err, &syntaxErr) {
			reason = fmt.Sprintf("invalid JSON5 at offset %d", syntaxErr.Offset)
		}
		return nil, &MalformedResponseError{Raw: candidate, Reason: reason, Err: err}
	}
	return doc, nil
}

// DecodePlan maps a parsed document onto a ParsedPlan. The top level must be
// an object with a "days" array whose items are objects; anything else in
// the document is accepted as-is.
func DecodePlan(doc interface{}) (*ParsedPlan, error) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf("top-level value is %s, want object", kindOf(doc))}
	}
	rawDays, ok := root["days"].([]interface{})
	if !ok {
		return nil, &MalformedResponseError{Reason: fmt.Sprintf(`"days" is %s, want array`, kindOf(root["days"]))}
	}

	plan := &ParsedPlan{Days: make([]DayPlan, 0, len(rawDays))}
	for idx, rd := range rawDays {
		d, ok := rd.(map[string]interface{})
		if !ok {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("day %d is %s, want object", idx, kindOf(rd))}
		}
		plan.Days = append(plan.Days, DayPlan{
			Title:     dayTitle(d["title"], idx),
			Exercises: exerciseList(d["exercises"]),
		})
	}
	return plan, nil
}

// DefaultDayTitle is used when the model leaves a day untitled.
func DefaultDayTitle(idx int) string {
	return fmt.Sprintf("Day %d", idx+1)
}

func dayTitle(v interface{}, idx int) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return DefaultDayTitle(idx)
}

func exerciseList(v interface{}) []interface{} {
	switch ex := v.(type) {
	case nil:
		return []interface{}{}
	case []interface{}:
		for i := range ex {
			ex[i] = finiteValues(ex[i])
		}
		return ex
	default:
		return []interface{}{finiteValues(ex)}
	}
}

// finiteValues replaces NaN and ±Infinity, which JSON and BSON encoders
// reject or mangle, with their JSON5 spelling.
func finiteValues(v interface{}) interface{} {
	switch t := v.(type) {
	case float64:
		switch {
		case math.IsNaN(t):
			return "NaN"
		case math.IsInf(t, 1):
			return "Infinity"
		case math.IsInf(t, -1):
			return "-Infinity"
		}
		return t
	case map[string]interface{}:
		for k, item := range t {
			t[k] = finiteValues(item)
		}
		return t
	case []interface{}:
		for i, item := range t {
			t[i] = finiteValues(item)
		}
		return t
	default:
		return v
	}
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "missing or null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
