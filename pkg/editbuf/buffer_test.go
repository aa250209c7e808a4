package editbuf

import "testing"

func TestNewClampsSelection(t *testing.T) {
	testCases := []struct {
		start, end   int
		wantS, wantE int
	}{
		{-3, 2, 0, 2},
		{5, 1, 1, 5},
		{2, 99, 2, 5},
		{7, 7, 5, 5},
	}
	for _, tc := range testCases {
		b := New("hello", tc.start, tc.end)
		s, e := b.Selection()
		if s != tc.wantS || e != tc.wantE {
			t.Errorf("New(%d,%d) selection = (%d,%d), want (%d,%d)", tc.start, tc.end, s, e, tc.wantS, tc.wantE)
		}
	}
}

func TestInsertAtCursor(t *testing.T) {
	testCases := []struct {
		name          string
		buf           Buffer
		before, after string
		expected      string
	}{
		{"caret pair", At("ab", 1), "(", ")", "a(|)b"},
		{"wrap selection", New("say hi now", 4, 6), "**", "**", "say **[hi]** now"},
		{"prefix only", At("title", 0), "# ", "", "# |title"},
		{"unicode", At("мир", 1), "*", "*", "м*|*ир"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.buf.InsertAtCursor(tc.before, tc.after)
			if got.String() != tc.expected {
				t.Errorf("InsertAtCursor = %q, want %q", got.String(), tc.expected)
			}
		})
	}
}

func TestWrapSelectionKeepsReceiver(t *testing.T) {
	b := New("word", 0, 4)
	w := b.WrapSelection("`", "`")
	if w.String() != "`[word]`" {
		t.Errorf("WrapSelection = %q", w.String())
	}
	if b.String() != "[word]" {
		t.Errorf("receiver mutated: %q", b.String())
	}
}

func TestReplaceRange(t *testing.T) {
	testCases := []struct {
		name       string
		buf        Buffer
		start, end int
		repl       string
		expected   string
	}{
		{"caret after range shifts", At("hello world", 11), 0, 5, "bye", "bye world|"},
		{"caret before range stays", At("hello world", 2), 6, 11, "there", "he|llo there"},
		{"caret inside moves to end", At("abcdef", 3), 1, 5, "XY", "aXY|f"},
		{"pure insert", At("ac", 1), 1, 1, "b", "a|bc"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.buf.ReplaceRange(tc.start, tc.end, tc.repl)
			if got.String() != tc.expected {
				t.Errorf("ReplaceRange = %q, want %q", got.String(), tc.expected)
			}
		})
	}
}

func TestDeleteAndMove(t *testing.T) {
	b := At("abc", 2)
	if got := b.DeleteBackward().String(); got != "a|c" {
		t.Errorf("DeleteBackward = %q", got)
	}
	if got := b.DeleteForward().String(); got != "ab|" {
		t.Errorf("DeleteForward = %q", got)
	}
	if got := At("abc", 0).DeleteBackward().String(); got != "|abc" {
		t.Errorf("DeleteBackward at 0 = %q", got)
	}
	if got := New("abcd", 1, 3).DeleteBackward().String(); got != "a|d" {
		t.Errorf("DeleteBackward selection = %q", got)
	}
	if got := b.MoveLeft().MoveLeft().MoveLeft().String(); got != "|abc" {
		t.Errorf("MoveLeft = %q", got)
	}
	if got := New("abcd", 1, 3).MoveRight().String(); got != "abc|d" {
		t.Errorf("MoveRight selection = %q", got)
	}

	lines := At("one\ntwo\nthree", 5)
	if got := lines.Home().String(); got != "one\n|two\nthree" {
		t.Errorf("Home = %q", got)
	}
	if got := lines.End().String(); got != "one\ntwo|\nthree" {
		t.Errorf("End = %q", got)
	}
	if got := lines.LineBeforeCaret(); got != "t" {
		t.Errorf("LineBeforeCaret = %q", got)
	}
	if got := lines.CurrentLine(); got != "two" {
		t.Errorf("CurrentLine = %q", got)
	}
}

func TestInsertText(t *testing.T) {
	if got := New("hello", 1, 4).InsertText("EY").String(); got != "hEY|o" {
		t.Errorf("InsertText = %q", got)
	}
	if got := AtEnd("x").InsertText("\n").String(); got != "x\n|" {
		t.Errorf("InsertText newline = %q", got)
	}
}
