package rubric

import "strings"

// CoerceScore converts score widget text to a number, falling back to 0.
func CoerceScore(s string) float64 {
	v, ok := parseLeadingInt(s)
	if !ok {
		return 0
	}
	return float64(v)
}

// CoerceWeight converts weight widget text to a number, falling back to 0.
func CoerceWeight(s string) float64 {
	v, ok := parseLeadingInt(s)
	if !ok {
		return 0
	}
	return float64(v)
}

// CoerceMaxScore converts max-score widget text to a number. Unparseable text
// and zero both fall back to 1.
func CoerceMaxScore(s string) float64 {
	v, ok := parseLeadingInt(s)
	if !ok || v == 0 {
		return 1
	}
	return float64(v)
}

// parseLeadingInt reads an optionally signed run of decimal digits at the start
// of s, ignoring leading whitespace and anything after the digits ("8.7" is 8,
// "12px" is 12).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			break
		}
		// widget values are small; clamp instead of overflowing
		if n < 1_000_000_000 {
			n = n*10 + int(ch-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
