package blocks

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBlockRange is returned for a block index outside the document.
var ErrBlockRange = errors.New("block index out of range")

// Block is one segment of a Document. Index is its position, not an identity.
type Block struct {
	Index int
	Text  string
}

// Document is an ordered sequence of blocks.
type Document struct {
	blocks []string
}

// Parse segments text into a Document.
func Parse(text string) *Document {
	return &Document{blocks: Split(text)}
}

// Text joins the blocks with Separator.
func (d *Document) Text() string {
	return Join(d.blocks)
}

// Len returns the number of blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Texts returns a copy of the block texts.
func (d *Document) Texts() []string {
	return append([]string(nil), d.blocks...)
}

// Blocks returns the blocks with their current indexes.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, t := range d.blocks {
		out[i] = Block{Index: i, Text: t}
	}
	return out
}

// Block returns the block at i.
func (d *Document) Block(i int) (Block, error) {
	if i < 0 || i >= len(d.blocks) {
		return Block{}, fmt.Errorf("%w: %d of %d", ErrBlockRange, i, len(d.blocks))
	}
	return Block{Index: i, Text: d.blocks[i]}, nil
}

// Replace sets the text of block i. The document is re-segmented afterwards,
// so text containing blank lines may become several blocks and blank text
// removes the block.
func (d *Document) Replace(i int, text string) error {
	if i < 0 || i >= len(d.blocks) {
		return fmt.Errorf("%w: %d of %d", ErrBlockRange, i, len(d.blocks))
	}
	d.blocks[i] = text
	d.normalize()
	return nil
}

// Append adds text as new trailing block(s). Blank text is ignored and
// reported as false.
func (d *Document) Append(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	d.blocks = append(d.blocks, text)
	d.normalize()
	return true
}

// Remove deletes block i.
func (d *Document) Remove(i int) error {
	if i < 0 || i >= len(d.blocks) {
		return fmt.Errorf("%w: %d of %d", ErrBlockRange, i, len(d.blocks))
	}
	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
	return nil
}

// Reset replaces the whole document.
func (d *Document) Reset(text string) {
	d.blocks = Split(text)
}

func (d *Document) normalize() {
	d.blocks = Split(Join(d.blocks))
}
