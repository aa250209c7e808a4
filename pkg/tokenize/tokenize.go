// Package tokenize extracts words, tags and short phrases from plain text.
//
// The scanner is a small state machine over runes rather than a regular
// expression, so the set of letters that form a term is explicit and
// configurable through Charset.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMinWordLen is the shortest word (in runes) that is kept.
	DefaultMinWordLen = 3
	// DefaultMinPhraseToken is the shortest whitespace token allowed inside a phrase.
	DefaultMinPhraseToken = 3
)

// Terms is the output of a single Tokenize call. Every term is lower-cased and
// appears once per occurrence.
type Terms struct {
	Words   []string
	Tags    []string
	Phrases []string
}

// Tokenizer is safe for concurrent use; it holds no mutable state.
type Tokenizer struct {
	charset        Charset
	minWordLen     int
	minPhraseToken int
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithCharset replaces the identifier character set.
func WithCharset(cs Charset) Option {
	return func(t *Tokenizer) { t.charset = cs }
}

// WithMinWordLen sets the minimum word length in runes.
func WithMinWordLen(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minWordLen = n
		}
	}
}

// WithMinPhraseToken sets the minimum rune length of each phrase component.
func WithMinPhraseToken(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minPhraseToken = n
		}
	}
}

// New creates a Tokenizer with the default charset and thresholds.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		charset:        DefaultCharset(),
		minWordLen:     DefaultMinWordLen,
		minPhraseToken: DefaultMinPhraseToken,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Charset returns the identifier set in use.
func (t *Tokenizer) Charset() Charset {
	return t.charset
}

// Tokenize runs all three extractors over text.
func (t *Tokenizer) Tokenize(text string) Terms {
	return Terms{
		Words:   t.Words(text),
		Tags:    t.Tags(text),
		Phrases: t.Phrases(text),
	}
}

// Words returns every maximal identifier run of at least minWordLen runes.
func (t *Tokenizer) Words(text string) []string {
	var words []string
	start, n := -1, 0
	flush := func(end int) {
		if start >= 0 && n >= t.minWordLen {
			words = append(words, strings.ToLower(text[start:end]))
		}
		start, n = -1, 0
	}
	for i, r := range text {
		if t.charset.Contains(r) {
			if start < 0 {
				start = i
			}
			n++
			continue
		}
		flush(i)
	}
	flush(len(text))
	return words
}

// Tags returns every sigil-prefixed identifier that starts the text or
// follows whitespace. The sigil is kept.
func (t *Tokenizer) Tags(text string) []string {
	var tags []string
	prev := ' '
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !IsSigil(r) || !unicode.IsSpace(prev) {
			prev = r
			i += size
			continue
		}
		end := i + size
		for end < len(text) {
			next, nsize := utf8.DecodeRuneInString(text[end:])
			if !t.charset.Contains(next) {
				break
			}
			end += nsize
		}
		if end == i+size {
			prev = r
			i += size
			continue
		}
		tags = append(tags, strings.ToLower(text[i:end]))
		prev, _ = utf8.DecodeLastRuneInString(text[:end])
		i = end
	}
	return tags
}

// Phrases returns 2- and 3-token windows over whitespace-split text in which
// every component is at least minPhraseToken runes long.
func (t *Tokenizer) Phrases(text string) []string {
	fields := strings.Fields(text)
	long := make([]bool, len(fields))
	for i, f := range fields {
		long[i] = utf8.RuneCountInString(f) >= t.minPhraseToken
	}

	var phrases []string
	for i := 0; i+1 < len(fields); i++ {
		if !long[i] || !long[i+1] {
			continue
		}
		phrases = append(phrases, strings.ToLower(fields[i]+" "+fields[i+1]))
		if i+2 < len(fields) && long[i+2] {
			phrases = append(phrases, strings.ToLower(fields[i]+" "+fields[i+1]+" "+fields[i+2]))
		}
	}
	return phrases
}
