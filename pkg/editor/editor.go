// Package editor ties a block document, the auto-format engine and the
// completion index together behind the edit-session API used by callers:
// begin an edit on one block, feed it keystrokes, then commit it back.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/blockserve/internal/utils"
	"github.com/bastiangx/blockserve/pkg/autoformat"
	"github.com/bastiangx/blockserve/pkg/blocks"
	"github.com/bastiangx/blockserve/pkg/complete"
	"github.com/bastiangx/blockserve/pkg/editbuf"
	"github.com/bastiangx/blockserve/pkg/index"
	"github.com/bastiangx/blockserve/pkg/pages"
	"github.com/charmbracelet/log"
)

var (
	ErrNoSession     = errors.New("no edit session")
	ErrSessionActive = errors.New("edit session already active")
	ErrBlockRange    = blocks.ErrBlockRange
)

// Editor owns one document and at most one edit session on it. It is not
// safe for concurrent use; the Index it holds is, and may be shared.
type Editor struct {
	doc     *blocks.Document
	idx     *index.Index
	engine  *autoformat.Engine
	matcher *complete.Matcher
	session *Session

	matchCase bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithIndex shares idx instead of creating a private index.
func WithIndex(idx *index.Index) Option {
	return func(e *Editor) { e.idx = idx }
}

// WithEngine sets the auto-format engine.
func WithEngine(engine *autoformat.Engine) Option {
	return func(e *Editor) { e.engine = engine }
}

// WithMatcher sets the completion matcher. It should read from the
// Editor's index.
func WithMatcher(m *complete.Matcher) Option {
	return func(e *Editor) { e.matcher = m }
}

// WithMatchCase makes accepted suggestions copy the capitalization of the
// typed prefix.
func WithMatchCase(on bool) Option {
	return func(e *Editor) { e.matchCase = on }
}

// New creates an Editor over doc. A nil doc starts empty.
func New(doc *blocks.Document, opts ...Option) *Editor {
	if doc == nil {
		doc = blocks.Parse("")
	}
	e := &Editor{doc: doc}
	for _, opt := range opts {
		opt(e)
	}
	if e.idx == nil {
		e.idx = index.New()
	}
	if e.engine == nil {
		e.engine = autoformat.New(autoformat.DefaultOptions())
	}
	if e.matcher == nil {
		e.matcher = complete.New(e.idx)
	}
	return e
}

// Document returns the document. Callers must not mutate it while a
// session is active.
func (e *Editor) Document() *blocks.Document {
	return e.doc
}

// Index returns the completion index.
func (e *Editor) Index() *index.Index {
	return e.idx
}

// Session returns the active session, if any.
func (e *Editor) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// SetDocument replaces the document text wholesale.
func (e *Editor) SetDocument(text string) error {
	if e.session != nil {
		return ErrSessionActive
	}
	e.doc.Reset(text)
	return nil
}

// BeginEdit opens a session on blockIndex (or TrailingSlot) with
// initialText in the buffer and the caret at its end.
func (e *Editor) BeginEdit(blockIndex int, initialText string) (Session, error) {
	if e.session != nil {
		return Session{}, ErrSessionActive
	}
	if blockIndex != TrailingSlot {
		if _, err := e.doc.Block(blockIndex); err != nil {
			return Session{}, err
		}
	}
	e.session = &Session{BlockIndex: blockIndex, Buffer: editbuf.AtEnd(initialText)}
	return *e.session, nil
}

// Focus opens a session on an existing block with its current text.
func (e *Editor) Focus(blockIndex int) (Session, error) {
	if blockIndex == TrailingSlot {
		return e.BeginEdit(TrailingSlot, "")
	}
	b, err := e.doc.Block(blockIndex)
	if err != nil {
		return Session{}, err
	}
	return e.BeginEdit(blockIndex, b.Text)
}

// SetSelection moves the caret or selection of the active session.
func (e *Editor) SetSelection(start, end int) (Session, error) {
	if e.session == nil {
		return Session{}, ErrNoSession
	}
	e.session.Buffer = e.session.Buffer.Select(start, end)
	return *e.session, nil
}

// ApplyKeystroke runs one key through the auto-format engine.
func (e *Editor) ApplyKeystroke(k autoformat.Key, m autoformat.Modifiers) (KeystrokeResult, error) {
	if e.session == nil {
		return KeystrokeResult{}, ErrNoSession
	}
	before := e.session.Buffer
	res := e.engine.Apply(before, k, m)
	e.session.Buffer = res.Buffer
	return KeystrokeResult{
		Session:                  *e.session,
		SuggestionsRequestNeeded: res.Buffer.Text() != before.Text(),
		Done:                     res.Done,
		Rule:                     res.Rule,
	}, nil
}

// Suggest returns completions for the token under the caret. limit <= 0
// uses the matcher default.
func (e *Editor) Suggest(limit int) (complete.Prefix, []index.Suggestion, error) {
	if e.session == nil {
		return complete.Prefix{}, nil, ErrNoSession
	}
	p, s := e.matcher.Suggest(e.session.Buffer, limit)
	return p, s, nil
}

// AcceptSuggestion replaces the token under the caret with text.
func (e *Editor) AcceptSuggestion(text string) (Session, error) {
	if e.session == nil {
		return Session{}, ErrNoSession
	}
	p, _ := e.matcher.PrefixAt(e.session.Buffer)
	if e.matchCase {
		text = utils.MatchCase(p.Text, text)
	}
	e.session.Buffer = complete.Accept(e.session.Buffer, p, text)
	return *e.session, nil
}

// InsertTable replaces the selection with an empty table of rows data rows
// and cols columns, on lines of its own, and puts the caret in the first
// header cell.
func (e *Editor) InsertTable(rows, cols int) (Session, error) {
	if e.session == nil {
		return Session{}, ErrNoSession
	}
	b := e.session.Buffer
	start, end := b.Selection()
	lead, table := "", blocks.NewTable(rows, cols)
	if strings.TrimSpace(b.Slice(b.LineStart(start), start)) != "" {
		lead = "\n"
	}
	if strings.TrimSpace(b.Slice(end, b.LineEnd(end))) != "" {
		table += "\n"
	}
	b = b.ReplaceRange(start, end, lead+table)
	e.session.Buffer = b.Collapse(start + len(lead) + len("| "))
	return *e.session, nil
}

// CommitEdit writes the session back into the document and ends it. The
// trailing slot appends a block only when its text is not blank; an
// existing block emptied to blank is removed.
func (e *Editor) CommitEdit() (*blocks.Document, error) {
	if e.session == nil {
		return nil, ErrNoSession
	}
	s := *e.session
	text := s.Buffer.Text()
	if s.Trailing() {
		if !e.doc.Append(text) {
			log.Debugf("editor: blank trailing entry dropped")
		}
	} else if err := e.doc.Replace(s.BlockIndex, text); err != nil {
		return nil, fmt.Errorf("commit block %d: %w", s.BlockIndex, err)
	}
	e.session = nil
	return e.doc, nil
}

// Cancel ends the session without touching the document.
func (e *Editor) Cancel() error {
	if e.session == nil {
		return ErrNoSession
	}
	e.session = nil
	return nil
}

// ToggleTask flips the n-th task checkbox of a committed block.
func (e *Editor) ToggleTask(blockIndex, n int) (bool, error) {
	if e.session != nil {
		return false, ErrSessionActive
	}
	b, err := e.doc.Block(blockIndex)
	if err != nil {
		return false, err
	}
	next, ok := blocks.ToggleTask(b.Text, n)
	if !ok {
		return false, nil
	}
	return true, e.doc.Replace(blockIndex, next)
}

// RemoveBlock deletes a committed block.
func (e *Editor) RemoveBlock(blockIndex int) error {
	if e.session != nil {
		return ErrSessionActive
	}
	return e.doc.Remove(blockIndex)
}

// IndexAllPages rebuilds the completion index from corpus.
func (e *Editor) IndexAllPages(corpus []pages.Page) error {
	return e.idx.IndexAllPages(corpus)
}

// IndexContent adds text to the completion index.
func (e *Editor) IndexContent(text string) error {
	return e.idx.IndexContent(text)
}

// ClearIndex empties the completion index.
func (e *Editor) ClearIndex() {
	e.idx.Clear()
}

// FindCompletions queries the index directly.
func (e *Editor) FindCompletions(prefix string, limit int) []index.Suggestion {
	return e.idx.FindCompletions(prefix, limit)
}

// Page renders the document as a page record.
func (e *Editor) Page(id, title string) pages.Page {
	return pages.Page{ID: id, Title: title, Content: e.doc.Text()}
}
