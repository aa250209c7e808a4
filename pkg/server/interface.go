/*
Package server implements msgpack IPC for the block editor and its
completion index.

The server reads a stream of msgpack maps from stdin and writes exactly one
msgpack map to stdout per request. Logs go to stderr only.

# IPC

Every request carries an "id" that is echoed back and an "action". A
request without an action is a completion query, which keeps the common
case small:

	{"id": "c1", "p": "ca", "l": 5}

and is answered with suggestions ranked by count:

	{"id": "c1", "s": [{"w": "cat", "k": "word", "n": 2}], "c": 1, "t": 12}

The corpus is replaced wholesale with "index":

	{"id": "i1", "action": "index", "pages": [{"id": "a", "title": "A", "content": "..."}]}

Editing follows the session model: "load" a document, "begin" on a block
(omit "block" for the trailing new-block slot), send each keystroke with
"key", then "commit":

	{"id": "e1", "action": "begin", "block": 0}
	{"id": "e2", "action": "key", "key": "Enter"}
	{"id": "e3", "action": "key", "key": "b", "mods": ["ctrl"]}
	{"id": "e4", "action": "commit"}

Key responses include fresh suggestions whenever the keystroke changed the
text. Failures are reported as {"id", "e", "c"} with code 400 for a bad
request and 500 for an internal failure; the server keeps reading after
either.

# Actions

	complete  p, l           suggestions for a prefix
	index     pages          rebuild the index from a corpus
	append    text           add text to the index
	clear                    empty the index
	split     text           segment text into blocks
	join      blocks         join blocks into text
	load      text           replace the edited document
	document                 current blocks
	begin     block?, text?  open an edit session
	select    sel            move caret or selection [start, end]
	key       key, mods      apply one keystroke
	suggest   l              suggestions at the caret
	accept    text           replace the token at the caret
	commit                   write the session back
	cancel                   drop the session
	table     rows, cols     insert an empty table at the caret
	toggle    block, n       flip the n-th task checkbox
	remove    block          delete a block
	stats                    index statistics
	health                   liveness
*/
package server

import "github.com/bastiangx/blockserve/pkg/pages"

// Request is the single envelope for every action.
type Request struct {
	ID        string       `msgpack:"id"`
	Action    string       `msgpack:"action,omitempty"`
	Prefix    string       `msgpack:"p,omitempty"`
	Limit     int          `msgpack:"l,omitempty"`
	Pages     []pages.Page `msgpack:"pages,omitempty"`
	Text      string       `msgpack:"text,omitempty"`
	Blocks    []string     `msgpack:"blocks,omitempty"`
	Block     *int         `msgpack:"block,omitempty"`
	Key       string       `msgpack:"key,omitempty"`
	Mods      []string     `msgpack:"mods,omitempty"`
	Selection []int        `msgpack:"sel,omitempty"`
	N         int          `msgpack:"n,omitempty"`
	Rows      int          `msgpack:"rows,omitempty"`
	Cols      int          `msgpack:"cols,omitempty"`
}

// CompletionSuggestion is one ranked completion.
type CompletionSuggestion struct {
	Text  string `msgpack:"w"`
	Kind  string `msgpack:"k"`
	Count int    `msgpack:"n"`
}

// CompletionResponse answers complete and suggest.
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
	// Start is the rune offset of the replaced token for suggest.
	Start int `msgpack:"start,omitempty"`
}

// SessionResponse reports the edit session after begin, select, key,
// accept, table and cancel. Block is -1 for the trailing slot.
type SessionResponse struct {
	ID          string                 `msgpack:"id"`
	Block       int                    `msgpack:"block"`
	Text        string                 `msgpack:"text"`
	Start       int                    `msgpack:"ss"`
	End         int                    `msgpack:"se"`
	Suggest     bool                   `msgpack:"sr,omitempty"`
	Done        bool                   `msgpack:"done,omitempty"`
	Rule        string                 `msgpack:"rule,omitempty"`
	Suggestions []CompletionSuggestion `msgpack:"s,omitempty"`
}

// DocumentResponse carries blocks and their joined text. Atomic and Table
// parallel Blocks: a fenced block must be rendered verbatim and a table
// block as a grid.
type DocumentResponse struct {
	ID     string   `msgpack:"id"`
	Blocks []string `msgpack:"blocks"`
	Text   string   `msgpack:"text"`
	Atomic []bool   `msgpack:"atomic"`
	Table  []bool   `msgpack:"table"`
}

// StatusResponse answers health, stats, index, append and clear.
type StatusResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
