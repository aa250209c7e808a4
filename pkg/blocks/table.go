package blocks

import "strings"

// IsTable reports whether block looks like a pipe table: it starts with a
// pipe, has at least a second pipe row, and a dash separator.
func IsTable(block string) bool {
	trimmed := strings.TrimSpace(block)
	return strings.HasPrefix(trimmed, "|") &&
		strings.Contains(trimmed, "\n|") &&
		strings.Contains(trimmed, "---")
}

// Skeleton returns a header row, a separator row and one data row with cols
// cells each. firstCell is placed in the first header cell; caret is the rune
// offset just after it.
func Skeleton(cols int, firstCell string) (text string, caret int) {
	if cols < 1 {
		cols = 1
	}
	header := make([]string, cols)
	header[0] = firstCell
	sep := make([]string, cols)
	empty := make([]string, cols)
	for i := range sep {
		sep[i] = "---"
	}

	text = row(header) + "\n" + row(sep) + "\n" + row(empty)
	caret = len([]rune("| " + firstCell))
	return text, caret
}

// NewTable builds a table with rows data rows and cols empty-titled columns.
func NewTable(rows, cols int) string {
	text, _ := Skeleton(cols, "")
	for i := 1; i < rows; i++ {
		text += "\n" + row(make([]string, max(cols, 1)))
	}
	return text
}

func row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
