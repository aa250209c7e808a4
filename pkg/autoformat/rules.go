package autoformat

import (
	"strings"
	"unicode"

	"github.com/bastiangx/blockserve/pkg/blocks"
	"github.com/bastiangx/blockserve/pkg/editbuf"
)

// Rule is one keystroke interceptor. Apply returns ok=false when the rule
// does not own the key; the buffer is then ignored.
type Rule struct {
	Name  string
	Apply func(b editbuf.Buffer, k Key, m Modifiers) (editbuf.Buffer, bool)
}

// DefaultPairs are the auto-closed delimiters.
var DefaultPairs = map[rune]rune{
	'*': '*',
	'`': '`',
	'[': ']',
	'(': ')',
	'"': '"',
}

func pairRule(pairs map[rune]rune) Rule {
	return Rule{Name: "pair", Apply: func(b editbuf.Buffer, k Key, m Modifiers) (editbuf.Buffer, bool) {
		if k.Code != KeyRune || m.Command() || b.HasSelection() {
			return b, false
		}
		closing, ok := pairs[k.Rune]
		if !ok {
			return b, false
		}
		// "- [" belongs to the checkbox rule
		if k.Rune == '[' && afterListDash(b) {
			return b, false
		}
		return b.InsertAtCursor(string(k.Rune), string(closing)), true
	}}
}

func headingSpaceRule() Rule {
	return Rule{Name: "heading", Apply: func(b editbuf.Buffer, k Key, _ Modifiers) (editbuf.Buffer, bool) {
		if k.Code != KeyRune || k.Rune != ' ' {
			return b, false
		}
		if prev, ok := b.RuneBefore(1); !ok || prev != '#' {
			return b, false
		}
		if strings.Trim(b.LineBeforeCaret(), "#") != "" {
			return b, false
		}
		return b.InsertText(" "), true
	}}
}

func smartLinkRule() Rule {
	return Rule{Name: "link", Apply: func(b editbuf.Buffer, k Key, _ Modifiers) (editbuf.Buffer, bool) {
		if k.Code != KeyEnter || b.HasSelection() {
			return b, false
		}
		line := b.LineBeforeCaret()
		if !isBareURL(line) {
			return b, false
		}
		start := b.LineStart(b.Caret())
		markup := "[" + line + "](" + line + ")\n"
		return b.ReplaceRange(start, b.Caret(), markup).Collapse(start + len([]rune(markup))), true
	}}
}

func isBareURL(s string) bool {
	var rest string
	switch {
	case strings.HasPrefix(s, "https://"):
		rest = s[len("https://"):]
	case strings.HasPrefix(s, "http://"):
		rest = s[len("http://"):]
	default:
		return false
	}
	return rest != "" && strings.IndexFunc(rest, unicode.IsSpace) < 0
}

func tableRule(cols int) Rule {
	return Rule{Name: "table", Apply: func(b editbuf.Buffer, k Key, _ Modifiers) (editbuf.Buffer, bool) {
		if k.Code != KeyRune || k.Rune != '|' {
			return b, false
		}
		if strings.Contains(b.CurrentLine(), "|") {
			return b, false
		}
		start, end := b.Selection()
		lineStart, lineEnd := b.LineStart(start), b.LineEnd(end)
		skeleton, caret := blocks.Skeleton(cols, strings.TrimSpace(b.LineBeforeCaret()))
		// text after the caret moves below the table
		if tail := strings.TrimSpace(b.Slice(end, lineEnd)); tail != "" {
			skeleton += "\n" + tail
		}
		return b.ReplaceRange(lineStart, lineEnd, skeleton).Collapse(lineStart + caret), true
	}}
}

func checkboxRule() Rule {
	return Rule{Name: "checkbox", Apply: func(b editbuf.Buffer, k Key, _ Modifiers) (editbuf.Buffer, bool) {
		if k.Code != KeyRune || k.Rune != '[' || !afterListDash(b) {
			return b, false
		}
		start, _ := b.Selection()
		return b.InsertText("[ ]").Collapse(start + 1), true
	}}
}

func afterListDash(b editbuf.Buffer) bool {
	r1, ok1 := b.RuneBefore(2)
	r2, ok2 := b.RuneBefore(1)
	return ok1 && ok2 && r1 == '-' && r2 == ' '
}

func listRule() Rule {
	return Rule{Name: "list", Apply: func(b editbuf.Buffer, k Key, _ Modifiers) (editbuf.Buffer, bool) {
		if k.Code != KeyEnter || b.HasSelection() {
			return b, false
		}
		indent, marker, ok := blocks.ListMarker(b.LineBeforeCaret())
		if !ok {
			return b, false
		}
		if strings.TrimSpace(b.CurrentLine()) == strings.TrimSpace(marker) {
			start := b.LineStart(b.Caret())
			return b.ReplaceRange(start, b.LineEnd(start), "").Collapse(start), true
		}
		// ordered markers repeat the same number
		return b.InsertText("\n" + indent + marker), true
	}}
}
