package autoformat

import "github.com/bastiangx/blockserve/pkg/editbuf"

type shortcut struct {
	r     rune
	shift bool
}

type action struct {
	name   string
	before string
	after  string
}

func (a action) apply(b editbuf.Buffer) editbuf.Buffer {
	return b.WrapSelection(a.before, a.after)
}

// defaultShortcuts maps Ctrl/Meta (+Shift) letters to Markdown markup.
func defaultShortcuts() map[shortcut]action {
	return map[shortcut]action{
		{'b', false}: {name: "bold", before: "**", after: "**"},
		{'i', false}: {name: "italic", before: "*", after: "*"},
		{'k', false}: {name: "link", before: "[", after: "](url)"},
		{'c', true}:  {name: "code", before: "`", after: "`"},
		{'q', true}:  {name: "quote", before: "> "},
		{'h', true}:  {name: "heading", before: "# "},
		{'l', true}:  {name: "list", before: "- "},
		{'t', true}:  {name: "task", before: "- [ ] "},
	}
}
