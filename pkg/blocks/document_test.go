package blocks

import (
	"errors"
	"reflect"
	"testing"
)

func TestDocumentReplace(t *testing.T) {
	doc := Parse("one\n\ntwo\n\nthree")

	if err := doc.Replace(1, "TWO"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := doc.Text(); got != "one\n\nTWO\n\nthree" {
		t.Errorf("Text() = %q", got)
	}

	// blank lines typed inside a block split it on the next segmentation
	if err := doc.Replace(1, "two-a\n\ntwo-b"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	want := []string{"one", "two-a", "two-b", "three"}
	if got := doc.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts() = %q, want %q", got, want)
	}

	if err := doc.Replace(0, "   "); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if doc.Len() != 3 {
		t.Errorf("blank replacement should drop the block, Len() = %d", doc.Len())
	}

	if err := doc.Replace(9, "x"); !errors.Is(err, ErrBlockRange) {
		t.Errorf("expected ErrBlockRange, got %v", err)
	}
}

func TestDocumentAppendRemove(t *testing.T) {
	doc := Parse("")
	if doc.Append("  \n ") {
		t.Error("blank text should not be appended")
	}
	if !doc.Append("first") || !doc.Append("second") {
		t.Fatal("Append failed")
	}
	if err := doc.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	b, err := doc.Block(0)
	if err != nil {
		t.Fatalf("Block: %v", err)
	}
	if b.Text != "second" || b.Index != 0 {
		t.Errorf("Block(0) = %+v", b)
	}
	if err := doc.Remove(3); !errors.Is(err, ErrBlockRange) {
		t.Errorf("expected ErrBlockRange, got %v", err)
	}
}

func TestToggleTask(t *testing.T) {
	block := "- [ ] buy milk\n  - [x] call bob\nnote"

	got, ok := ToggleTask(block, 0)
	if !ok || got != "- [x] buy milk\n  - [x] call bob\nnote" {
		t.Errorf("ToggleTask(0) = %q, %v", got, ok)
	}
	got, ok = ToggleTask(block, 1)
	if !ok || got != "- [ ] buy milk\n  - [ ] call bob\nnote" {
		t.Errorf("ToggleTask(1) = %q, %v", got, ok)
	}
	if _, ok := ToggleTask(block, 2); ok {
		t.Error("ToggleTask(2) should report no such task")
	}

	testCases := []struct {
		name     string
		block    string
		expected string
	}{
		{"star marker", "* [ ] a", "* [x] a"},
		{"plus marker", "+ [x] a", "+ [ ] a"},
		{"ordered marker", "12. [X] a", "12. [ ] a"},
		{"indented ordered", "\t1. [ ] a", "\t1. [x] a"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToggleTask(tc.block, 0)
			if !ok || got != tc.expected {
				t.Errorf("ToggleTask(%q) = %q, %v, want %q", tc.block, got, ok, tc.expected)
			}
		})
	}
	if _, ok := ToggleTask("[ ] no marker\n-[ ] no space", 0); ok {
		t.Error("checkbox without a list marker is not a task")
	}
}

func TestTable(t *testing.T) {
	text, caret := Skeleton(2, "")
	if text != "|  |  |\n| --- | --- |\n|  |  |" {
		t.Errorf("Skeleton text = %q", text)
	}
	if caret != 2 {
		t.Errorf("Skeleton caret = %d", caret)
	}
	if !IsTable(text) {
		t.Error("skeleton should be detected as a table")
	}

	text, caret = Skeleton(3, "Name")
	if text != "| Name |  |  |\n| --- | --- | --- |\n|  |  |  |" || caret != 6 {
		t.Errorf("Skeleton(3, Name) = %q, %d", text, caret)
	}

	if got := NewTable(2, 1); got != "|  |\n| --- |\n|  |\n|  |" {
		t.Errorf("NewTable = %q", got)
	}
	if IsTable("| just a pipe") {
		t.Error("single pipe line is not a table")
	}
}

func TestListMarker(t *testing.T) {
	testCases := []struct {
		line           string
		indent, marker string
		ok             bool
	}{
		{"- a", "", "- ", true},
		{"\t+ b", "\t", "+ ", true},
		{"12. twelve", "", "12. ", true},
		{"-no space", "", "", false},
		{"1) paren", "", "", false},
		{"plain", "", "", false},
	}
	for _, tc := range testCases {
		indent, marker, ok := ListMarker(tc.line)
		if indent != tc.indent || marker != tc.marker || ok != tc.ok {
			t.Errorf("ListMarker(%q) = (%q, %q, %v)", tc.line, indent, marker, ok)
		}
	}
}
