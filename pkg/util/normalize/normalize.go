package normalize

import "strings"

const usernameMaxLen = 50

// ParseList splits a comma-delimited field into trimmed non-empty strings.
// Empty input and the sentinel "N/A" yield an empty list; "N/A" elements are
// dropped as well.
func ParseList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "N/A" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" && part != "N/A" {
			out = append(out, part)
		}
	}
	return out
}

// DeriveUsername builds the lowercase slug used as the upsert conflict key:
// lower(first)-lower(last) with everything outside [a-z0-9-] stripped, capped
// at 50 characters. Returns "" when either name part is missing. Derivation is
// deterministic, which is what makes re-imports idempotent.
func DeriveUsername(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return ""
	}

	raw := strings.ToLower(first) + "-" + strings.ToLower(last)
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteRune(c)
		}
	}

	username := b.String()
	if len(username) > usernameMaxLen {
		username = username[:usernameMaxLen]
	}
	return username
}

// EstimateYearsExperience maps skill count to a coarse ordinal proxy. It is
// not a real experience estimate; more skills merely correlate with longer
// careers in the source data.
func EstimateYearsExperience(skills []string) int {
	switch n := len(skills); {
	case n == 0:
		return 0
	case n > 20:
		return 8
	case n > 15:
		return 6
	case n > 10:
		return 4
	case n > 5:
		return 2
	default:
		return 1
	}
}

// NormalizeLinkedin canonicalizes a LinkedIn URL for duplicate detection.
func NormalizeLinkedin(url string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(url)), "/")
}

// NormalizeEmail canonicalizes an email for duplicate detection.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
