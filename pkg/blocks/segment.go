// Package blocks splits Markdown text into independently editable blocks and
// joins them back.
//
// A block is a maximal run of non-blank lines. A line whose trimmed content
// starts with a fence delimiter toggles fenced mode; while fenced, blank lines
// do not end the block, so a fenced code region is never cut in two. An
// unterminated fence swallows the rest of the document.
//
// Join(Split(text)) reproduces text except that runs of blank lines collapse
// to a single separator.
package blocks

import "strings"

const (
	// Separator is placed between blocks by Join.
	Separator = "\n\n"
	// FenceDelimiter opens and closes a fenced region.
	FenceDelimiter = "```"
)

// IsFenceLine reports whether line toggles fenced mode.
func IsFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), FenceDelimiter)
}

// Split segments text into block texts.
func Split(text string) []string {
	var (
		blocks  []string
		current []string
		inFence bool
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if IsFenceLine(line) {
			inFence = !inFence
			current = append(current, line)
			continue
		}
		if inFence {
			current = append(current, line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

// Join is the inverse of Split.
func Join(blocks []string) string {
	return strings.Join(blocks, Separator)
}

// IsAtomic reports whether block starts a fenced region.
func IsAtomic(block string) bool {
	first, _, _ := strings.Cut(block, "\n")
	return IsFenceLine(first)
}
