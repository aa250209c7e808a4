package utils

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// MatchCase copies the capitalization of typed onto the leading runes of
// completion, so that accepting "hello" after typing "He" gives "Hello".
// A fully upper-case typed text of two or more letters upper-cases the
// whole completion.
func MatchCase(typed, completion string) string {
	tr := []rune(typed)
	letters, upper := 0, 0
	for _, r := range tr {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if upper == 0 {
		return completion
	}

	cr := []rune(completion)
	if letters >= 2 && upper == letters {
		for i, r := range cr {
			cr[i] = unicode.ToUpper(r)
		}
		return string(cr)
	}
	for i := 0; i < len(tr) && i < len(cr); i++ {
		if unicode.IsUpper(tr[i]) && unicode.ToLower(tr[i]) == unicode.ToLower(cr[i]) {
			cr[i] = tr[i]
		}
	}
	return string(cr)
}

// FormatWithCommas renders n with thousands separators.
func FormatWithCommas(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	out = append(out, s[:lead]...)
	for i := lead; i < len(s); i += 3 {
		out = append(out, ',')
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
