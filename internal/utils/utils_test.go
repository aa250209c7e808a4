package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMatchCase(t *testing.T) {
	testCases := []struct {
		typed, completion, want string
	}{
		{"he", "hello", "hello"},
		{"He", "hello", "Hello"},
		{"HE", "hello", "HELLO"},
		{"H", "hello", "Hello"},
		{"#Wo", "#work", "#Work"},
		{"При", "привет", "Привет"},
	}
	for _, tc := range testCases {
		t.Run(tc.typed, func(t *testing.T) {
			if got := MatchCase(tc.typed, tc.completion); got != tc.want {
				t.Errorf("MatchCase(%q, %q) = %q, want %q", tc.typed, tc.completion, got, tc.want)
			}
		})
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		123456:   "123,456",
		-1234567: "-1,234,567",
	}
	for n, want := range testCases {
		if got := FormatWithCommas(n); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hell…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("Truncate short = %q", got)
	}
}

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter("Skip")
	var kept []string
	for _, s := range []string{"a", "skip", "b", "A"} {
		if f.ShouldInclude(s) {
			kept = append(kept, s)
		}
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(kept, want) {
		t.Errorf("kept %v, want %v", kept, want)
	}
}

func TestExtractStrings(t *testing.T) {
	data := map[string]any{
		"ok":    []any{"a", "b"},
		"mixed": []any{"a", int64(1)},
		"plain": "a",
	}
	if got, ok := ExtractStrings(data, "ok"); !ok || !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ok = %v, %v", got, ok)
	}
	if _, ok := ExtractStrings(data, "mixed"); ok {
		t.Error("mixed array accepted")
	}
	if _, ok := ExtractStrings(data, "plain"); ok {
		t.Error("plain string accepted")
	}
}

func TestResolveCorpusPath(t *testing.T) {
	configDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(configDir, "pages"), 0o755); err != nil {
		t.Fatal(err)
	}
	got := ResolveCorpusPath("pages", configDir)
	if got != filepath.Join(configDir, "pages") && got != "pages" {
		t.Errorf("ResolveCorpusPath = %q", got)
	}
	abs := filepath.Join(configDir, "missing")
	if got := ResolveCorpusPath(abs, configDir); got != abs {
		t.Errorf("absolute path changed to %q", got)
	}
}

func TestSaveTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	in := struct {
		Name string `toml:"name"`
	}{Name: "x"}
	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatal(err)
	}
	var out struct {
		Name string `toml:"name"`
	}
	if err := LoadTOMLFile(path, &out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "x" {
		t.Errorf("round trip = %+v", out)
	}
}
