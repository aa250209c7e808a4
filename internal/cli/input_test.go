package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/blockserve/pkg/index"
	"github.com/bastiangx/blockserve/pkg/pages"
)

func TestInputLoop(t *testing.T) {
	idx := index.New()
	if err := idx.IndexAllPages([]pages.Page{{ID: "a", Content: "cat cat catalog #cats"}}); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader("ca\n\nc\n#ca\n:stats\n:split a\\n\\nb\n" +
		":split | a |\\n| --- |\\n| 1 |\\n\\n```\\ncode\\n```\n")
	var out bytes.Buffer
	h := NewInputHandler(idx, in, &out, 2, 60, 10)
	if err := h.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Found 3 suggestions for prefix 'ca'",
		"cat",
		"catalog",
		"Found 1 suggestions for prefix '#ca'",
		"#cats",
		"words",
		`[0] "a"`,
		`[1] "b"`,
		`[0] "| a |\n| --- |\n| 1 |" table`,
		"[1] \"```\\ncode\\n```\" fenced",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	// "c" is too short and never reaches the index
	if h.Requests() != 3 {
		t.Errorf("Requests() = %d, want 3", h.Requests())
	}
	if strings.Contains(got, "prefix 'c'") {
		t.Errorf("short prefix was queried:\n%s", got)
	}
}
