package index

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bastiangx/blockserve/pkg/pages"
)

func corpus(contents ...string) []pages.Page {
	out := make([]pages.Page, len(contents))
	for i, c := range contents {
		out[i] = pages.Page{ID: fmt.Sprintf("p%d", i), Content: c}
	}
	return out
}

func built(t *testing.T, contents ...string) *Index {
	t.Helper()
	idx := New()
	if err := idx.IndexAllPages(corpus(contents...)); err != nil {
		t.Fatalf("IndexAllPages: %v", err)
	}
	return idx
}

func TestCompletionRanking(t *testing.T) {
	idx := built(t, "cat cat dog")

	got := idx.FindCompletions("ca", 5)
	if len(got) != 1 {
		t.Fatalf("FindCompletions(ca) = %+v", got)
	}
	if got[0] != (Suggestion{Text: "cat", Kind: Word, Count: 2}) {
		t.Errorf("FindCompletions(ca)[0] = %+v", got[0])
	}

	if got := idx.FindCompletions("c", 5); len(got) != 0 {
		t.Errorf("single rune prefix should return nothing, got %+v", got)
	}
}

func TestTagIsolation(t *testing.T) {
	idx := built(t, "#work and #worklog")

	got := idx.FindCompletions("#wor", 5)
	if len(got) != 2 {
		t.Fatalf("FindCompletions(#wor) = %+v", got)
	}
	for _, s := range got {
		if s.Kind != Tag {
			t.Errorf("expected only tags, got %+v", s)
		}
	}
	if got[0].Text != "#work" || got[1].Text != "#worklog" {
		t.Errorf("tag order = %+v", got)
	}

	// the words exist but are never mixed in
	if n := idx.Count(Word, "worklog"); n != 1 {
		t.Errorf("Count(word, worklog) = %d", n)
	}
}

func TestTiesKeepFirstSeenOrder(t *testing.T) {
	idx := built(t, "zebra zenith", "zealot zebra zenith zealot")

	got := idx.FindCompletions("ze", 10)
	want := []string{"zebra", "zenith", "zealot"}
	if len(got) != len(want) {
		t.Fatalf("FindCompletions(ze) = %+v", got)
	}
	for i, w := range want {
		if got[i].Text != w || got[i].Count != 2 {
			t.Errorf("result %d = %+v, want %s x2", i, got[i], w)
		}
	}
}

func TestPhraseRouting(t *testing.T) {
	idx := built(t, "Quick brown fox jumps", "quick brown bear")

	got := idx.FindCompletions("quick b", 5)
	if len(got) == 0 {
		t.Fatal("expected phrase suggestions")
	}
	if got[0].Text != "quick brown" || got[0].Kind != Phrase || got[0].Count != 2 {
		t.Errorf("top phrase = %+v", got[0])
	}
	for _, s := range got {
		if s.Kind != Phrase {
			t.Errorf("expected only phrases, got %+v", s)
		}
	}
}

func TestLimit(t *testing.T) {
	idx := built(t, "alpha alps altar alto album alien")
	if got := idx.FindCompletions("al", 3); len(got) != 3 {
		t.Errorf("limit 3 returned %d", len(got))
	}
	if got := idx.FindCompletions("al", 0); len(got) != DefaultLimit {
		t.Errorf("default limit returned %d", len(got))
	}
}

func TestNotReady(t *testing.T) {
	idx := New()
	if err := idx.IndexContent("cat cat"); err != nil {
		t.Fatalf("IndexContent: %v", err)
	}
	if idx.Ready() {
		t.Error("index should not be ready before IndexAllPages")
	}
	if got := idx.FindCompletions("ca", 5); got != nil {
		t.Errorf("not ready index returned %+v", got)
	}
}

func TestRebuildReplaces(t *testing.T) {
	idx := built(t, "apple apple")
	if err := idx.IndexAllPages(corpus("apricot")); err != nil {
		t.Fatalf("IndexAllPages: %v", err)
	}
	got := idx.FindCompletions("ap", 5)
	if len(got) != 1 || got[0].Text != "apricot" || got[0].Count != 1 {
		t.Errorf("after rebuild = %+v", got)
	}

	idx.Clear()
	if got := idx.FindCompletions("ap", 5); len(got) != 0 {
		t.Errorf("after Clear = %+v", got)
	}
	if s := idx.Stats(); s["words"] != 0 || s["ready"] != 1 {
		t.Errorf("Stats after Clear = %v", s)
	}
}

func TestIncrementalContent(t *testing.T) {
	idx := built(t)
	if err := idx.IndexContent("note note"); err != nil {
		t.Fatalf("IndexContent: %v", err)
	}
	if err := idx.IndexContent("note"); err != nil {
		t.Fatalf("IndexContent: %v", err)
	}
	if n := idx.Count(Word, "note"); n != 3 {
		t.Errorf("Count(note) = %d, want 3", n)
	}
}

func TestInvalidInput(t *testing.T) {
	idx := built(t, "keep keep")

	bad := string([]byte{0xff, 0xfe, 'x'})
	if err := idx.IndexContent(bad); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("IndexContent(bad) err = %v", err)
	}
	if err := idx.IndexAllPages(corpus("fresh", bad)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("IndexAllPages(bad) err = %v", err)
	}
	if n := idx.Count(Word, "keep"); n != 2 {
		t.Errorf("rejected rebuild should keep old index, Count(keep) = %d", n)
	}
}

func TestConcurrentReaders(t *testing.T) {
	idx := built(t, "concurrent readers consume counts")

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				idx.FindCompletions("co", 5)
			}
		}()
	}
	for i := 0; i < 20; i++ {
		if err := idx.IndexAllPages(corpus("concurrent readers consume counts", fmt.Sprint(i))); err != nil {
			t.Errorf("IndexAllPages: %v", err)
		}
	}
	wg.Wait()

	if got := idx.FindCompletions("co", 5); len(got) != 3 {
		t.Errorf("after rebuilds = %+v", got)
	}
}

func TestRoute(t *testing.T) {
	testCases := map[string]Kind{
		"#tag":  Tag,
		"@who":  Tag,
		"two w": Phrase,
		"word":  Word,
	}
	for prefix, want := range testCases {
		if got := Route(prefix); got != want {
			t.Errorf("Route(%q) = %s, want %s", prefix, got, want)
		}
	}
}
