package utils

import (
	"strings"
)

// SuggestionFilter drops suggestions whose text was already emitted.
// It is not safe for concurrent use; create one per query.
type SuggestionFilter struct {
	seen map[string]struct{}
}

// NewSuggestionFilter creates a filter that will also reject every text in exclude.
func NewSuggestionFilter(exclude ...string) *SuggestionFilter {
	seen := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		seen[strings.ToLower(e)] = struct{}{}
	}
	return &SuggestionFilter{seen: seen}
}

// ShouldInclude reports whether text is new and records it.
func (f *SuggestionFilter) ShouldInclude(text string) bool {
	key := strings.ToLower(text)
	if _, dup := f.seen[key]; dup {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
