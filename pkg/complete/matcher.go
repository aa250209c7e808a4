// Package complete finds the token under the caret of an edit buffer and
// turns it into completion suggestions.
package complete

import (
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/blockserve/pkg/editbuf"
	"github.com/bastiangx/blockserve/pkg/index"
	"github.com/bastiangx/blockserve/pkg/tokenize"
)

// Source answers prefix queries. *index.Index implements it.
type Source interface {
	FindCompletions(prefix string, limit int) []index.Suggestion
}

// Prefix is the token being typed. Start is its rune offset in the buffer;
// it always ends at the caret.
type Prefix struct {
	Text  string
	Start int
}

// Matcher is safe for concurrent use if its Source is.
type Matcher struct {
	src       Source
	charset   tokenize.Charset
	minPrefix int
	limit     int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithCharset sets the identifier runes that make up a word prefix.
func WithCharset(cs tokenize.Charset) Option {
	return func(m *Matcher) { m.charset = cs }
}

// WithMinPrefix sets the shortest prefix that triggers a query.
func WithMinPrefix(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.minPrefix = n
		}
	}
}

// WithLimit sets the default number of suggestions.
func WithLimit(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.limit = n
		}
	}
}

// New creates a Matcher reading from src.
func New(src Source, opts ...Option) *Matcher {
	m := &Matcher{
		src:       src,
		charset:   tokenize.DefaultCharset(),
		minPrefix: index.DefaultMinPrefix,
		limit:     index.DefaultLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PrefixAt extracts the token ending at the caret. A sigil that starts the
// text or follows whitespace makes it a tag prefix (the sigil alone counts);
// otherwise it is the identifier run before the caret.
func (m *Matcher) PrefixAt(b editbuf.Buffer) (Prefix, bool) {
	caret := b.Caret()
	before := []rune(b.Slice(0, caret))

	start := len(before)
	for start > 0 && m.charset.Contains(before[start-1]) {
		start--
	}

	if s := start - 1; s >= 0 && tokenize.IsSigil(before[s]) && (s == 0 || unicode.IsSpace(before[s-1])) {
		return Prefix{Text: string(before[s:]), Start: s}, true
	}
	if start == len(before) {
		return Prefix{Start: caret}, false
	}
	return Prefix{Text: string(before[start:]), Start: start}, true
}

// Suggest returns the prefix under the caret and its completions. limit <= 0
// uses the Matcher default.
func (m *Matcher) Suggest(b editbuf.Buffer, limit int) (Prefix, []index.Suggestion) {
	p, ok := m.PrefixAt(b)
	if !ok || b.HasSelection() || utf8.RuneCountInString(p.Text) < m.minPrefix {
		return p, nil
	}
	if limit <= 0 {
		limit = m.limit
	}
	return p, m.src.FindCompletions(p.Text, limit)
}

// Accept replaces the prefix with text and puts the caret after it.
func Accept(b editbuf.Buffer, p Prefix, text string) editbuf.Buffer {
	return b.ReplaceRange(p.Start, b.Caret(), text).Collapse(p.Start + utf8.RuneCountInString(text))
}
