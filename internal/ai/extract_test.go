package ai

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeQuotes(t *testing.T) {
	in := "{“title”: ‘Leg day’, „notes‟: ‚keep‛}\n\t end"
	want := "{\"title\": 'Leg day', \"notes\": 'keep'}\n\t end"
	if got := NormalizeQuotes(in); got != want {
		t.Fatalf("NormalizeQuotes = %q, want %q", got, want)
	}
}

func TestNormalizeQuotesIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain ascii \"quoted\" 'text'",
		"“A” ‘B’ „‟‚‛",
		"mixed “\" and '’ with ünïcödé and\nnewlines",
	}
	for _, in := range inputs {
		once := NormalizeQuotes(in)
		twice := NormalizeQuotes(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestExtractJSONSubstringExact(t *testing.T) {
	body := `{"days": [{"title": "A", "exercises": []}]}`
	cases := []struct {
		name, raw string
	}{
		{"bare", body},
		{"prose around", "Sure! Here is your program:\n" + body + "\nGood luck!"},
		{"code fence", "```json\n" + body + "\n```"},
		{"leading whitespace", "   \n\t" + body + "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.raw)
			if err != nil {
				t.Fatalf("ExtractJSON: %v", err)
			}
			if got != body {
				t.Fatalf("ExtractJSON = %q, want %q", got, body)
			}
		})
	}
}

func TestExtractJSONUsesOuterBraces(t *testing.T) {
	raw := "note {a} then {\"days\": []} and a stray }"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := "{a} then {\"days\": []} and a stray }"
	if got != want {
		t.Fatalf("ExtractJSON = %q, want %q", got, want)
	}
}

func TestExtractJSONNormalizesQuotes(t *testing.T) {
	raw := "Here: {“days”: [{“title”: ‘Push’}]}"
	got, err := ExtractJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\"days\": [{\"title\": 'Push'}]}"; got != want {
		t.Fatalf("ExtractJSON = %q, want %q", got, want)
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no braces":      "I cannot help with that.",
		"no open brace":  "days: [] }",
		"no close brace": "{\"days\": [",
		"reversed":       "} oops {",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ExtractJSON(raw)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("err = %v, want ErrMalformedResponse", err)
			}
			var mre *MalformedResponseError
			if !errors.As(err, &mre) || mre.Raw != raw {
				t.Fatalf("error does not carry the raw text: %#v", err)
			}
			if strings.Contains(err.Error(), raw) && raw != "" {
				t.Fatalf("error message leaks raw text: %q", err.Error())
			}
		})
	}
}
