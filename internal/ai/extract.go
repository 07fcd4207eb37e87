package ai

import "strings"

// Typographic quotes models like to emit, mapped to their ASCII form.
var quoteReplacer = strings.NewReplacer(
	"\u201c", `"`, // “
	"\u201d", `"`, // ”
	"\u201e", `"`, // „
	"\u201f", `"`, // ‟
	"\u2018", "'", // ‘
	"\u2019", "'", // ’
	"\u201a", "'", // ‚
	"\u201b", "'", // ‛
)

// NormalizeQuotes replaces smart quotes with straight ones and leaves every
// other character alone. Applying it twice is the same as applying it once.
func NormalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// ExtractJSON returns the span from the first '{' to the last '}' of raw,
// inclusive, with quotes normalized. Prose or code fences around the object
// are dropped.
func ExtractJSON(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", &MalformedResponseError{Raw: raw, Reason: "no opening brace"}
	}
	end := strings.LastIndexByte(raw, '}')
	if end < 0 {
		return "", &MalformedResponseError{Raw: raw, Reason: "no closing brace"}
	}
	if end < start {
		return "", &MalformedResponseError{Raw: raw, Reason: "closing brace precedes opening brace"}
	}
	return NormalizeQuotes(raw[start : end+1]), nil
}
