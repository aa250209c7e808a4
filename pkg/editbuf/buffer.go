// Package editbuf is the text and selection state of one block under edit.
//
// Buffer is an immutable value: every operation returns a new Buffer and
// leaves the receiver alone. Offsets are rune offsets into the text and the
// selection always satisfies 0 <= Start <= End <= Len.
package editbuf

import "strings"

// Buffer holds text plus a selection. An empty selection is a caret.
type Buffer struct {
	text  []rune
	start int
	end   int
}

// New creates a Buffer with the given selection, clamped and ordered.
func New(text string, start, end int) Buffer {
	b := Buffer{text: []rune(text)}
	return b.Select(start, end)
}

// At creates a Buffer with a caret at pos.
func At(text string, pos int) Buffer {
	return New(text, pos, pos)
}

// AtEnd creates a Buffer with the caret after the last rune.
func AtEnd(text string) Buffer {
	b := Buffer{text: []rune(text)}
	return b.Collapse(len(b.text))
}

// Text returns the buffer contents.
func (b Buffer) Text() string { return string(b.text) }

// Len returns the length in runes.
func (b Buffer) Len() int { return len(b.text) }

// Selection returns the ordered selection bounds.
func (b Buffer) Selection() (start, end int) { return b.start, b.end }

// Caret returns the selection end, which is where typing continues.
func (b Buffer) Caret() int { return b.end }

// HasSelection reports whether a non-empty range is selected.
func (b Buffer) HasSelection() bool { return b.start != b.end }

// Selected returns the selected text.
func (b Buffer) Selected() string { return string(b.text[b.start:b.end]) }

// Select returns b with a new selection. Bounds are clamped into the text
// and swapped when reversed.
func (b Buffer) Select(start, end int) Buffer {
	start = clamp(start, 0, len(b.text))
	end = clamp(end, 0, len(b.text))
	if start > end {
		start, end = end, start
	}
	return Buffer{text: b.text, start: start, end: end}
}

// Collapse returns b with a caret at pos.
func (b Buffer) Collapse(pos int) Buffer {
	return b.Select(pos, pos)
}

// RuneBefore returns the rune n positions before the caret (n=1 is the
// rune immediately before it).
func (b Buffer) RuneBefore(n int) (rune, bool) {
	i := b.start - n
	if i < 0 || i >= len(b.text) {
		return 0, false
	}
	return b.text[i], true
}

// Slice returns the text between two offsets.
func (b Buffer) Slice(from, to int) string {
	from = clamp(from, 0, len(b.text))
	to = clamp(to, from, len(b.text))
	return string(b.text[from:to])
}

// LineStart returns the offset of the first rune of the line holding pos.
func (b Buffer) LineStart(pos int) int {
	pos = clamp(pos, 0, len(b.text))
	for i := pos - 1; i >= 0; i-- {
		if b.text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// LineEnd returns the offset of the newline ending the line holding pos, or
// Len for the last line.
func (b Buffer) LineEnd(pos int) int {
	pos = clamp(pos, 0, len(b.text))
	for i := pos; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			return i
		}
	}
	return len(b.text)
}

// LineBeforeCaret returns the text from the start of the caret's line up to
// the selection start.
func (b Buffer) LineBeforeCaret() string {
	return b.Slice(b.LineStart(b.start), b.start)
}

// CurrentLine returns the whole line containing the selection start.
func (b Buffer) CurrentLine() string {
	return b.Slice(b.LineStart(b.start), b.LineEnd(b.start))
}

// ReplaceRange splices replacement into [start, end). Selection bounds at or
// before start stay put, bounds at or after end shift by the length change,
// and bounds strictly inside the range move to the end of the replacement.
func (b Buffer) ReplaceRange(start, end int, replacement string) Buffer {
	start = clamp(start, 0, len(b.text))
	end = clamp(end, start, len(b.text))
	repl := []rune(replacement)

	text := make([]rune, 0, len(b.text)-(end-start)+len(repl))
	text = append(text, b.text[:start]...)
	text = append(text, repl...)
	text = append(text, b.text[end:]...)

	delta := len(repl) - (end - start)
	remap := func(p int) int {
		switch {
		case p <= start:
			return p
		case p >= end:
			return p + delta
		default:
			return start + len(repl)
		}
	}
	return Buffer{text: text}.Select(remap(b.start), remap(b.end))
}

// InsertAtCursor replaces the selection with before + selection + after.
// The selection keeps covering the original selected text, now shifted by
// len(before); with an empty selection the caret lands right after before.
func (b Buffer) InsertAtCursor(before, after string) Buffer {
	sel := b.Selected()
	start, end := b.start, b.end
	n := len([]rune(before))
	return b.ReplaceRange(start, end, before+sel+after).Select(start+n, end+n)
}

// WrapSelection surrounds the selection with prefix and suffix.
func (b Buffer) WrapSelection(prefix, suffix string) Buffer {
	return b.InsertAtCursor(prefix, suffix)
}

// InsertText replaces the selection with s and puts the caret after it.
func (b Buffer) InsertText(s string) Buffer {
	start := b.start
	return b.ReplaceRange(b.start, b.end, s).Collapse(start + len([]rune(s)))
}

// DeleteBackward removes the selection, or the rune before the caret.
func (b Buffer) DeleteBackward() Buffer {
	if b.HasSelection() {
		return b.ReplaceRange(b.start, b.end, "").Collapse(b.start)
	}
	if b.start == 0 {
		return b
	}
	return b.ReplaceRange(b.start-1, b.start, "").Collapse(b.start - 1)
}

// DeleteForward removes the selection, or the rune after the caret.
func (b Buffer) DeleteForward() Buffer {
	if b.HasSelection() {
		return b.ReplaceRange(b.start, b.end, "").Collapse(b.start)
	}
	if b.start >= len(b.text) {
		return b
	}
	return b.ReplaceRange(b.start, b.start+1, "").Collapse(b.start)
}

// MoveLeft collapses a selection to its start or moves the caret back one rune.
func (b Buffer) MoveLeft() Buffer {
	if b.HasSelection() {
		return b.Collapse(b.start)
	}
	return b.Collapse(b.start - 1)
}

// MoveRight collapses a selection to its end or moves the caret forward one rune.
func (b Buffer) MoveRight() Buffer {
	if b.HasSelection() {
		return b.Collapse(b.end)
	}
	return b.Collapse(b.end + 1)
}

// Home moves the caret to the start of its line.
func (b Buffer) Home() Buffer {
	return b.Collapse(b.LineStart(b.end))
}

// End moves the caret to the end of its line.
func (b Buffer) End() Buffer {
	return b.Collapse(b.LineEnd(b.end))
}

func (b Buffer) String() string {
	var sb strings.Builder
	sb.WriteString(string(b.text[:b.start]))
	if b.HasSelection() {
		sb.WriteString("[")
		sb.WriteString(string(b.text[b.start:b.end]))
		sb.WriteString("]")
	} else {
		sb.WriteString("|")
	}
	sb.WriteString(string(b.text[b.end:]))
	return sb.String()
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
