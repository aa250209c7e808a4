package blocks

import (
	"strings"
	"unicode"
)

// ToggleTask flips the n-th (0-based) task line of block between "[ ]" and
// "[x]". A task line is any list item ("- ", "* ", "+ " or "N. ") whose body
// starts with a checkbox. ok is false when block has fewer than n+1 task
// lines.
func ToggleTask(block string, n int) (string, bool) {
	lines := strings.Split(block, "\n")
	seen := 0
	for i, line := range lines {
		indent, marker, ok := ListMarker(line)
		if !ok {
			continue
		}
		head := len(indent) + len(marker)
		body := line[head:]
		var box string
		switch {
		case strings.HasPrefix(body, "[ ]"):
			box = "[x]"
		case strings.HasPrefix(body, "[x]"), strings.HasPrefix(body, "[X]"):
			box = "[ ]"
		default:
			continue
		}
		if seen == n {
			lines[i] = line[:head] + box + body[3:]
			return strings.Join(lines, "\n"), true
		}
		seen++
	}
	return block, false
}

// ListMarker recognizes a leading list marker ("- ", "* ", "+ " or "N. ")
// after optional indentation.
func ListMarker(line string) (indent, marker string, ok bool) {
	body := strings.TrimLeftFunc(line, unicode.IsSpace)
	indent = line[:len(line)-len(body)]

	if len(body) >= 2 && strings.ContainsRune("-*+", rune(body[0])) && body[1] == ' ' {
		return indent, body[:2], true
	}
	digits := 0
	for digits < len(body) && body[digits] >= '0' && body[digits] <= '9' {
		digits++
	}
	if digits > 0 && strings.HasPrefix(body[digits:], ". ") {
		return indent, body[:digits+2], true
	}
	return "", "", false
}
