package tokenize

import (
	"fmt"
	"strings"
)

type runeRange struct {
	lo, hi rune
}

// alphabets are the named letter sets a Charset can be assembled from.
// Both cases are listed; terms are lower-cased after extraction.
var alphabets = map[string][]runeRange{
	"latin": {
		{'a', 'z'},
		{'A', 'Z'},
	},
	"cyrillic": {
		{'а', 'я'},
		{'А', 'Я'},
		{'ё', 'ё'},
		{'Ё', 'Ё'},
	},
}

// DefaultAlphabets is the letter set used when none is configured.
var DefaultAlphabets = []string{"latin", "cyrillic"}

// DefaultExtra holds the non-letter runes that may appear inside an identifier.
const DefaultExtra = "_-"

// Charset decides which runes belong to an identifier run.
// ASCII digits are always members.
type Charset struct {
	names  []string
	ranges []runeRange
	extra  string
}

// NewCharset builds a Charset from alphabet names and a string of extra runes.
func NewCharset(names []string, extra string) (Charset, error) {
	cs := Charset{extra: extra}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ranges, ok := alphabets[key]
		if !ok {
			return Charset{}, fmt.Errorf("unknown alphabet %q", name)
		}
		cs.names = append(cs.names, key)
		cs.ranges = append(cs.ranges, ranges...)
	}
	return cs, nil
}

// DefaultCharset returns latin + cyrillic letters, digits, '_' and '-'.
func DefaultCharset() Charset {
	cs, _ := NewCharset(DefaultAlphabets, DefaultExtra)
	return cs
}

// Contains reports whether r may appear in a word or after a tag sigil.
func (c Charset) Contains(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	for _, rr := range c.ranges {
		if r >= rr.lo && r <= rr.hi {
			return true
		}
	}
	return strings.ContainsRune(c.extra, r)
}

// Alphabets lists the alphabet names this Charset was built from.
func (c Charset) Alphabets() []string {
	return append([]string(nil), c.names...)
}

// IsSigil reports whether r starts a tag.
func IsSigil(r rune) bool {
	return r == '#' || r == '@'
}
