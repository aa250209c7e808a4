/*
Package autoformat rewrites an edit buffer in response to single keystrokes.

An Engine holds an ordered list of interceptor rules. For every keydown the
rules run in order and the first one that accepts the key owns it: its
buffer mutation replaces the default character insertion and no further
rule runs. The fixed order is

	pair      auto-close * ` [ ( " around an empty caret
	heading   a space after a run of leading '#'
	link      Enter on a bare http(s) URL line wraps it as [url](url)
	table     '|' on a line without pipes expands a table skeleton
	checkbox  '[' after "- " becomes "[ ]"
	list      Enter continues or exits a "-", "*", "+" or "N." list

Keys carrying control or meta are commands rather than text: they are
matched against the formatting shortcuts (bold, italic, link, ...) and never
reach the rules. Alt keys skip the rules and get the default handling, so an
Alt-composed rune is inserted as typed. Shift+Enter and Escape end the edit.
*/
package autoformat

import (
	"unicode"

	"github.com/bastiangx/blockserve/pkg/editbuf"
	"github.com/charmbracelet/log"
)

// Options toggles individual behaviors.
type Options struct {
	AutoPairs        bool
	Pairs            map[rune]rune
	SmartLinks       bool
	Tables           bool
	TableColumns     int
	Checkboxes       bool
	ListContinuation bool
}

// DefaultOptions enables every rule with two-column tables.
func DefaultOptions() Options {
	return Options{
		AutoPairs:        true,
		Pairs:            DefaultPairs,
		SmartLinks:       true,
		Tables:           true,
		TableColumns:     2,
		Checkboxes:       true,
		ListContinuation: true,
	}
}

// Result describes what a keystroke did.
type Result struct {
	Buffer editbuf.Buffer
	// Rule names the interceptor or shortcut that owned the key. It is empty
	// for default handling.
	Rule string
	// Handled is false when the key was ignored.
	Handled bool
	// Done asks the caller to end the edit session.
	Done bool
}

// Engine is stateless between keystrokes and safe for concurrent use.
type Engine struct {
	rules     []Rule
	shortcuts map[shortcut]action
}

// New builds an Engine from opts.
func New(opts Options) *Engine {
	var rules []Rule
	if opts.AutoPairs {
		pairs := opts.Pairs
		if pairs == nil {
			pairs = DefaultPairs
		}
		rules = append(rules, pairRule(pairs))
	}
	rules = append(rules, headingSpaceRule())
	if opts.SmartLinks {
		rules = append(rules, smartLinkRule())
	}
	if opts.Tables {
		cols := opts.TableColumns
		if cols < 1 {
			cols = 2
		}
		rules = append(rules, tableRule(cols))
	}
	if opts.Checkboxes {
		rules = append(rules, checkboxRule())
	}
	if opts.ListContinuation {
		rules = append(rules, listRule())
	}
	return &Engine{rules: rules, shortcuts: defaultShortcuts()}
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Apply processes one keystroke against b.
func (e *Engine) Apply(b editbuf.Buffer, k Key, m Modifiers) Result {
	if k.Code == KeyEscape || (k.Code == KeyEnter && m.Has(ModShift)) {
		return Result{Buffer: b, Handled: true, Done: true}
	}

	if m.Has(ModCtrl) || m.Has(ModMeta) {
		if k.Code != KeyRune {
			return Result{Buffer: b}
		}
		sc := shortcut{r: unicode.ToLower(k.Rune), shift: m.Has(ModShift)}
		act, ok := e.shortcuts[sc]
		if !ok {
			return Result{Buffer: b}
		}
		return Result{Buffer: act.apply(b), Rule: act.name, Handled: true}
	}
	if m.Has(ModAlt) {
		return defaultKey(b, k)
	}

	for _, r := range e.rules {
		if next, ok := r.Apply(b, k, m); ok {
			log.Debugf("autoformat: rule %s owns key %q", r.Name, k.Rune)
			return Result{Buffer: next, Rule: r.Name, Handled: true}
		}
	}
	return defaultKey(b, k)
}

func defaultKey(b editbuf.Buffer, k Key) Result {
	var next editbuf.Buffer
	switch k.Code {
	case KeyRune:
		next = b.InsertText(string(k.Rune))
	case KeyEnter:
		next = b.InsertText("\n")
	case KeyBackspace:
		next = b.DeleteBackward()
	case KeyDelete:
		next = b.DeleteForward()
	case KeyLeft:
		next = b.MoveLeft()
	case KeyRight:
		next = b.MoveRight()
	case KeyHome:
		next = b.Home()
	case KeyEnd:
		next = b.End()
	case KeyTab:
		// swallowed so focus stays in the block
		return Result{Buffer: b, Handled: true}
	default:
		return Result{Buffer: b}
	}
	return Result{Buffer: next, Handled: true}
}
