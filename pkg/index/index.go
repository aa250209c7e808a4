/*
Package index maintains frequency-ranked word, tag and phrase tables built
from a corpus of pages and answers prefix-completion queries against them.

The index is a derived structure: every corpus change replays the whole
corpus through IndexAllPages, which clears the tables and rebuilds them
from scratch. There is exactly one write path (IndexAllPages / IndexContent
/ Clear) and any number of concurrent readers (FindCompletions, Stats).

	idx := index.New(index.WithMinPrefix(2))
	if err := idx.IndexAllPages(pages); err != nil {
		return err
	}
	suggestions := idx.FindCompletions("#wor", 5)

Until the first successful IndexAllPages the index reports itself as not
ready and every query returns no suggestions.
*/
package index

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/blockserve/internal/utils"
	"github.com/bastiangx/blockserve/pkg/pages"
	"github.com/bastiangx/blockserve/pkg/tokenize"
	"github.com/charmbracelet/log"
)

const (
	// DefaultMinPrefix is the shortest prefix (in runes) that is looked up.
	DefaultMinPrefix = 2
	// DefaultLimit is used when a query passes a non-positive limit.
	DefaultLimit = 5
)

// ErrInvalidInput is returned when content handed to the write path is not
// valid UTF-8 text.
var ErrInvalidInput = errors.New("invalid input")

// Index holds the three frequency tables.
type Index struct {
	mu           sync.RWMutex
	tokenizer    *tokenize.Tokenizer
	words        *table
	tags         *table
	phrases      *table
	seq          int
	pages        int
	ready        bool
	minPrefix    int
	defaultLimit int
}

// Option configures an Index.
type Option func(*Index)

// WithTokenizer replaces the default tokenizer.
func WithTokenizer(t *tokenize.Tokenizer) Option {
	return func(idx *Index) {
		if t != nil {
			idx.tokenizer = t
		}
	}
}

// WithMinPrefix sets the minimum prefix length for FindCompletions.
func WithMinPrefix(n int) Option {
	return func(idx *Index) {
		if n > 0 {
			idx.minPrefix = n
		}
	}
}

// WithDefaultLimit sets the limit used when a query asks for <= 0 results.
func WithDefaultLimit(n int) Option {
	return func(idx *Index) {
		if n > 0 {
			idx.defaultLimit = n
		}
	}
}

// New creates an empty, not yet ready index.
func New(opts ...Option) *Index {
	idx := &Index{
		tokenizer:    tokenize.New(),
		words:        newTable(Word),
		tags:         newTable(Tag),
		phrases:      newTable(Phrase),
		minPrefix:    DefaultMinPrefix,
		defaultLimit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Clear empties all three tables. Readiness is kept: a cleared index that
// was built once answers queries with no results.
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.clearLocked()
}

func (idx *Index) clearLocked() {
	idx.words.reset()
	idx.tags.reset()
	idx.phrases.reset()
	idx.seq = 0
	idx.pages = 0
}

// IndexContent tokenizes text and adds one count per extracted term.
func (idx *Index) IndexContent(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidInput)
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.addLocked(text)
	return nil
}

// IndexAllPages replaces the index contents with the terms of every page,
// in order. The pages are validated first; on error the previous index is
// left untouched.
func (idx *Index) IndexAllPages(corpus []pages.Page) error {
	for i, p := range corpus {
		if !utf8.ValidString(p.Content) {
			return fmt.Errorf("%w: page %d (%q) content is not valid UTF-8", ErrInvalidInput, i, p.ID)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.clearLocked()
	for _, p := range corpus {
		if p.Content == "" {
			continue
		}
		idx.addLocked(p.Content)
	}
	idx.pages = len(corpus)
	idx.ready = true

	log.Debugf("Indexed %d pages: words=%d tags=%d phrases=%d",
		len(corpus), idx.words.size, idx.tags.size, idx.phrases.size)
	return nil
}

func (idx *Index) addLocked(text string) {
	terms := idx.tokenizer.Tokenize(text)
	for _, tag := range terms.Tags {
		idx.insert(idx.tags, tag)
	}
	for _, w := range terms.Words {
		idx.insert(idx.words, w)
	}
	for _, p := range terms.Phrases {
		idx.insert(idx.phrases, p)
	}
}

func (idx *Index) insert(t *table, term string) {
	if t.add(term, idx.seq) {
		idx.seq++
	}
}

// Ready reports whether IndexAllPages has completed at least once.
func (idx *Index) Ready() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.ready
}

// Count returns the stored count of an exact, already normalized term.
func (idx *Index) Count(kind Kind, term string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tableFor(kind).count(term)
}

func (idx *Index) tableFor(kind Kind) *table {
	switch kind {
	case Tag:
		return idx.tags
	case Phrase:
		return idx.phrases
	default:
		return idx.words
	}
}

// Route picks the table a normalized prefix is looked up in: tags for a
// leading sigil, phrases when it contains a space, words otherwise.
func Route(lowerPrefix string) Kind {
	switch {
	case strings.HasPrefix(lowerPrefix, "#"), strings.HasPrefix(lowerPrefix, "@"):
		return Tag
	case strings.Contains(lowerPrefix, " "):
		return Phrase
	default:
		return Word
	}
}

// FindCompletions returns up to limit terms starting with prefix, most
// frequent first. Equal counts keep the order in which the terms were first
// indexed. Prefixes shorter than the minimum, and queries against an index
// that was never built, yield no suggestions.
func (idx *Index) FindCompletions(prefix string, limit int) []Suggestion {
	if utf8.RuneCountInString(prefix) < idx.minPrefix {
		return nil
	}
	if limit <= 0 {
		limit = idx.defaultLimit
	}
	lowerPrefix := strings.ToLower(prefix)

	idx.mu.RLock()
	if !idx.ready {
		idx.mu.RUnlock()
		log.Debugf("Index not ready, no completions for %q", prefix)
		return nil
	}
	matches := idx.tableFor(Route(lowerPrefix)).scan(lowerPrefix)
	idx.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Count != matches[j].Count {
			return matches[i].Count > matches[j].Count
		}
		return matches[i].seq < matches[j].seq
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	filter := utils.NewSuggestionFilter()
	suggestions := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		if filter.ShouldInclude(m.Text) {
			suggestions = append(suggestions, m.Suggestion)
		}
	}
	return suggestions
}

// Stats returns table sizes and corpus information.
func (idx *Index) Stats() map[string]int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ready := 0
	if idx.ready {
		ready = 1
	}
	return map[string]int{
		"words":   idx.words.size,
		"tags":    idx.tags.size,
		"phrases": idx.phrases.size,
		"pages":   idx.pages,
		"ready":   ready,
	}
}
