package index

import "fmt"

// Kind identifies the table a suggestion came from.
type Kind uint8

const (
	Word Kind = iota
	Tag
	Phrase
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Tag:
		return "tag"
	case Phrase:
		return "phrase"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Suggestion is a single completion candidate.
type Suggestion struct {
	Text  string
	Kind  Kind
	Count int
}
