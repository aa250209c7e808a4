package index

import (
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// entry is the trie payload. seq is the insertion order of the key since the
// last reset and breaks count ties.
type entry struct {
	count int
	seq   int
}

// table is one term -> count map stored in a patricia trie so that prefix
// scans only touch the matching subtree.
type table struct {
	kind Kind
	trie *patricia.Trie
	size int
}

func newTable(kind Kind) *table {
	return &table{kind: kind, trie: patricia.NewTrie()}
}

func (t *table) reset() {
	t.trie = patricia.NewTrie()
	t.size = 0
}

// add increments term and returns true when the key is new.
func (t *table) add(term string, seq int) bool {
	key := patricia.Prefix(term)
	if item := t.trie.Get(key); item != nil {
		item.(*entry).count++
		return false
	}
	t.trie.Insert(key, &entry{count: 1, seq: seq})
	t.size++
	return true
}

func (t *table) count(term string) int {
	item := t.trie.Get(patricia.Prefix(term))
	if item == nil {
		return 0
	}
	return item.(*entry).count
}

type match struct {
	Suggestion
	seq int
}

// scan collects every key that starts with lowerPrefix, the prefix itself included.
func (t *table) scan(lowerPrefix string) []match {
	var matches []match
	err := t.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		e, ok := item.(*entry)
		if !ok {
			log.Errorf("Unknown item type: %T for term %s", item, p)
			return nil
		}
		matches = append(matches, match{
			Suggestion: Suggestion{Text: string(p), Kind: t.kind, Count: e.count},
			seq:        e.seq,
		})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting %s subtree: %v", t.kind, err)
		return nil
	}
	return matches
}
