package editor

import "github.com/bastiangx/blockserve/pkg/editbuf"

// TrailingSlot is the block index of the empty "new block" entry after the
// last block.
const TrailingSlot = -1

// Session is the block currently being edited.
type Session struct {
	BlockIndex int
	Buffer     editbuf.Buffer
}

// Trailing reports whether the session edits the trailing slot.
func (s Session) Trailing() bool {
	return s.BlockIndex == TrailingSlot
}

// KeystrokeResult is returned by ApplyKeystroke.
type KeystrokeResult struct {
	Session Session
	// SuggestionsRequestNeeded is set when the keystroke changed the text,
	// so the completion list under the caret may be stale.
	SuggestionsRequestNeeded bool
	// Done means the key ended the edit; the caller should commit.
	Done bool
	// Rule names the auto-format rule or shortcut that handled the key.
	Rule string
}
