/*
Package pages is the structured persisted shape of a document corpus:

	{ "pages": [ { "id": "...", "title": "...", "content": "..." } ] }

Page content is block-joined Markdown text, so Blocks and WithBlocks round
trip through the block segmenter without losing block boundaries (runs of
blank lines collapse to one separator).

Records encode as msgpack (the IPC wire format) or JSON.
*/
package pages

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bastiangx/blockserve/pkg/blocks"
	"github.com/vmihailenco/msgpack/v5"
)

// Page is one document of the corpus.
type Page struct {
	ID      string `msgpack:"id" json:"id"`
	Title   string `msgpack:"title" json:"title"`
	Content string `msgpack:"content" json:"content"`
}

// Record is the persisted corpus.
type Record struct {
	Pages []Page `msgpack:"pages" json:"pages"`
}

// Blocks segments the page content.
func (p Page) Blocks() []string {
	return blocks.Split(p.Content)
}

// WithBlocks returns a copy of p whose content is the joined blocks.
func (p Page) WithBlocks(texts []string) Page {
	p.Content = blocks.Join(texts)
	return p
}

// Find returns the page with the given id.
func (r Record) Find(id string) (Page, bool) {
	for _, p := range r.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// Put replaces the page with the same id, or appends it.
func (r *Record) Put(p Page) {
	for i := range r.Pages {
		if r.Pages[i].ID == p.ID {
			r.Pages[i] = p
			return
		}
	}
	r.Pages = append(r.Pages, p)
}

// MarshalMsgpack encodes r.
func MarshalMsgpack(r Record) ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode pages record: %w", err)
	}
	return data, nil
}

// UnmarshalMsgpack decodes a record produced by MarshalMsgpack.
func UnmarshalMsgpack(data []byte) (Record, error) {
	var r Record
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decode pages record: %w", err)
	}
	return r, nil
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode pages record: %w", err)
	}
	return nil
}

// ReadJSON reads a JSON record.
func ReadJSON(rd io.Reader) (Record, error) {
	var r Record
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return Record{}, fmt.Errorf("decode pages record: %w", err)
	}
	return r, nil
}
