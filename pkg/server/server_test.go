package server

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/bastiangx/blockserve/pkg/config"
	"github.com/bastiangx/blockserve/pkg/editor"
	"github.com/bastiangx/blockserve/pkg/pages"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func newTestServer(in io.Reader, out io.Writer) *Server {
	return NewServer(editor.New(nil), config.DefaultConfig().Server, in, out, log.New(io.Discard))
}

func encodeAll(t *testing.T, values ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			t.Fatalf("encode %+v: %v", v, err)
		}
	}
	return &buf
}

func intPtr(n int) *int { return &n }

func TestStartProtocol(t *testing.T) {
	in := encodeAll(t,
		Request{ID: "1", Action: "index", Pages: []pages.Page{{ID: "a", Content: "cat cat dog"}}},
		Request{ID: "2", Prefix: "ca"},
		Request{ID: "3", Prefix: "c"},
		"not a request",
		Request{ID: "4", Action: "nope"},
		Request{ID: "5", Action: "health"},
	)
	var out bytes.Buffer
	s := newTestServer(in, &out)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Requests() != 5 {
		t.Errorf("Requests() = %d, want 5", s.Requests())
	}

	dec := msgpack.NewDecoder(&out)

	var st StatusResponse
	if err := dec.Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.ID != "1" || st.Status != "ok" || st.Stats["ready"] != 1 || st.Stats["pages"] != 1 {
		t.Errorf("index response = %+v", st)
	}

	var comp CompletionResponse
	if err := dec.Decode(&comp); err != nil {
		t.Fatal(err)
	}
	want := []CompletionSuggestion{{Text: "cat", Kind: "word", Count: 2}}
	if comp.ID != "2" || comp.Count != 1 || !reflect.DeepEqual(comp.Suggestions, want) {
		t.Errorf("complete response = %+v", comp)
	}

	comp = CompletionResponse{}
	if err := dec.Decode(&comp); err != nil {
		t.Fatal(err)
	}
	if comp.ID != "3" || comp.Count != 0 || len(comp.Suggestions) != 0 {
		t.Errorf("short prefix response = %+v", comp)
	}

	for _, wantID := range []string{"", "4"} {
		var e ErrorResponse
		if err := dec.Decode(&e); err != nil {
			t.Fatal(err)
		}
		if e.ID != wantID || e.Code != 400 || e.Error == "" {
			t.Errorf("error response = %+v, want id %q code 400", e, wantID)
		}
	}

	st = StatusResponse{}
	if err := dec.Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.ID != "5" || st.Status != "ok" {
		t.Errorf("health response = %+v", st)
	}
}

func TestEditingSession(t *testing.T) {
	s := newTestServer(&bytes.Buffer{}, io.Discard)

	steps := []struct {
		req  Request
		want any
	}{
		{
			Request{ID: "load", Action: "load", Text: "one"},
			DocumentResponse{ID: "load", Blocks: []string{"one"}, Text: "one", Atomic: []bool{false}, Table: []bool{false}},
		},
		{
			Request{ID: "b", Action: "begin"},
			SessionResponse{ID: "b", Block: editor.TrailingSlot},
		},
		{
			Request{ID: "k1", Action: "key", Key: "("},
			SessionResponse{ID: "k1", Block: -1, Text: "()", Start: 1, End: 1, Suggest: true, Rule: "pair", Suggestions: []CompletionSuggestion{}},
		},
		{
			Request{ID: "k2", Action: "key", Key: "Escape"},
			SessionResponse{ID: "k2", Block: -1, Text: "()", Start: 1, End: 1, Done: true},
		},
		{
			Request{ID: "c", Action: "commit"},
			DocumentResponse{ID: "c", Blocks: []string{"one", "()"}, Text: "one\n\n()", Atomic: []bool{false, false}, Table: []bool{false, false}},
		},
		{
			Request{ID: "f", Action: "begin", Block: intPtr(0)},
			SessionResponse{ID: "f", Block: 0, Text: "one", Start: 3, End: 3},
		},
		{
			Request{ID: "sel", Action: "select", Selection: []int{0, 3}},
			SessionResponse{ID: "sel", Block: 0, Text: "one", Start: 0, End: 3},
		},
		{
			Request{ID: "bold", Action: "key", Key: "b", Mods: []string{"ctrl"}},
			SessionResponse{ID: "bold", Block: 0, Text: "**one**", Start: 2, End: 5, Suggest: true, Rule: "bold", Suggestions: []CompletionSuggestion{}},
		},
		{
			Request{ID: "c2", Action: "commit"},
			DocumentResponse{ID: "c2", Blocks: []string{"**one**", "()"}, Text: "**one**\n\n()", Atomic: []bool{false, false}, Table: []bool{false, false}},
		},
		{
			Request{ID: "rm", Action: "remove", Block: intPtr(1)},
			DocumentResponse{ID: "rm", Blocks: []string{"**one**"}, Text: "**one**", Atomic: []bool{false}, Table: []bool{false}},
		},
		{
			Request{ID: "t", Action: "begin"},
			SessionResponse{ID: "t", Block: -1},
		},
		{
			Request{ID: "grid", Action: "table", Rows: 1, Cols: 1},
			SessionResponse{ID: "grid", Block: -1, Text: "|  |\n| --- |\n|  |", Start: 2, End: 2},
		},
		{
			Request{ID: "c3", Action: "commit"},
			DocumentResponse{
				ID:     "c3",
				Blocks: []string{"**one**", "|  |\n| --- |\n|  |"},
				Text:   "**one**\n\n|  |\n| --- |\n|  |",
				Atomic: []bool{false, false},
				Table:  []bool{false, true},
			},
		},
	}
	for _, step := range steps {
		t.Run(step.req.ID, func(t *testing.T) {
			if got := s.Handle(step.req); !reflect.DeepEqual(got, step.want) {
				t.Errorf("Handle(%+v) =\n%+v\nwant\n%+v", step.req, got, step.want)
			}
		})
	}
}

func TestContractErrors(t *testing.T) {
	s := newTestServer(&bytes.Buffer{}, io.Discard)

	testCases := []struct {
		name string
		req  Request
		code int
	}{
		{"commit without session", Request{Action: "commit"}, 400},
		{"key without session", Request{Action: "key", Key: "a"}, 400},
		{"begin out of range", Request{Action: "begin", Block: intPtr(3)}, 400},
		{"bad key", Request{Action: "key", Key: "hyperkey"}, 400},
		{"bad selection", Request{Action: "select", Selection: []int{1}}, 400},
		{"missing prefix", Request{Action: "complete"}, 400},
		{"invalid utf8", Request{Action: "append", Text: "\xff"}, 400},
		{"toggle without block", Request{Action: "toggle"}, 400},
		{"table without session", Request{Action: "table", Rows: 1, Cols: 2}, 400},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, ok := s.Handle(tc.req).(ErrorResponse)
			if !ok {
				t.Fatalf("Handle() = %+v, want ErrorResponse", resp)
			}
			if resp.Code != tc.code {
				t.Errorf("code = %d, want %d (%s)", resp.Code, tc.code, resp.Error)
			}
		})
	}
}

func TestSplitJoin(t *testing.T) {
	s := newTestServer(&bytes.Buffer{}, io.Discard)
	got := s.Handle(Request{ID: "s", Action: "split", Text: "a\n\n\n\nb"})
	want := DocumentResponse{ID: "s", Blocks: []string{"a", "b"}, Text: "a\n\nb", Atomic: []bool{false, false}, Table: []bool{false, false}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("split = %+v, want %+v", got, want)
	}
	got = s.Handle(Request{ID: "j", Action: "join", Blocks: []string{"x", "y"}})
	want = DocumentResponse{ID: "j", Blocks: []string{"x", "y"}, Text: "x\n\ny", Atomic: []bool{false, false}, Table: []bool{false, false}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("join = %+v, want %+v", got, want)
	}
}

func TestDocumentBlockFlags(t *testing.T) {
	s := newTestServer(&bytes.Buffer{}, io.Discard)
	text := "intro\n\n```go\na\n\nb\n```\n\n| a | b |\n| --- | --- |\n| 1 | 2 |"
	got, ok := s.Handle(Request{ID: "d", Action: "split", Text: text}).(DocumentResponse)
	if !ok {
		t.Fatalf("split did not return a DocumentResponse")
	}
	if len(got.Blocks) != 3 {
		t.Fatalf("blocks = %q", got.Blocks)
	}
	if want := []bool{false, true, false}; !reflect.DeepEqual(got.Atomic, want) {
		t.Errorf("Atomic = %v, want %v", got.Atomic, want)
	}
	if want := []bool{false, false, true}; !reflect.DeepEqual(got.Table, want) {
		t.Errorf("Table = %v, want %v", got.Table, want)
	}
}
