// Package cli is an interactive loop for trying completion queries against
// a loaded corpus from the terminal.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/blockserve/internal/utils"
	"github.com/bastiangx/blockserve/pkg/blocks"
	"github.com/bastiangx/blockserve/pkg/index"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Querier is the part of the index the CLI needs.
type Querier interface {
	FindCompletions(prefix string, limit int) []index.Suggestion
	Stats() map[string]int
}

var (
	kindStyles = map[index.Kind]lipgloss.Style{
		index.Word:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		index.Tag:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		index.Phrase: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	}
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// InputHandler reads one prefix per line and prints its completions.
// Lines starting with ':' are commands (:stats, :split <text>, :help).
type InputHandler struct {
	index           Querier
	in              io.Reader
	out             io.Writer
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	requestCount    int
}

// NewInputHandler creates a handler over idx.
func NewInputHandler(idx Querier, in io.Reader, out io.Writer, minLength, maxLength, limit int) *InputHandler {
	return &InputHandler{
		index:           idx,
		in:              in,
		out:             out,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
	}
}

// Start runs the loop until the input ends.
func (h *InputHandler) Start() error {
	fmt.Fprintln(h.out, "blockserve CLI")
	fmt.Fprintln(h.out, dimStyle.Render("type a prefix and press Enter (#tag, two words for phrases, :help)"))

	scanner := bufio.NewScanner(h.in)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(line[1:])
			continue
		}
		h.handleInput(line)
	}
}

// Requests returns how many queries were made.
func (h *InputHandler) Requests() int {
	return h.requestCount
}

func (h *InputHandler) handleCommand(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	switch name {
	case "stats":
		stats := h.index.Stats()
		keys := make([]string, 0, len(stats))
		for k := range stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h.out, "%-8s %10s\n", k, utils.FormatWithCommas(stats[k]))
		}
	case "split":
		// "\n" typed literally stands for a line break
		text := strings.ReplaceAll(arg, `\n`, "\n")
		for i, b := range blocks.Split(text) {
			var tag string
			switch {
			case blocks.IsAtomic(b):
				tag = " " + dimStyle.Render("fenced")
			case blocks.IsTable(b):
				tag = " " + dimStyle.Render("table")
			}
			fmt.Fprintf(h.out, "[%d] %q%s\n", i, b, tag)
		}
	case "help":
		fmt.Fprintln(h.out, ":stats          index sizes")
		fmt.Fprintln(h.out, `:split <text>   segment text into blocks (\n for newline)`)
	default:
		log.Errorf("Unknown command: %s", name)
	}
}

func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++

	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if n > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	start := time.Now()
	suggestions := h.index.FindCompletions(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}

	fmt.Fprintf(h.out, "Found %d suggestions for prefix '%s':\n", len(suggestions), prefix)
	for i, s := range suggestions {
		text := kindStyles[s.Kind].Render(utils.Truncate(s.Text, 40))
		fmt.Fprintf(h.out, "%2d. %-40s %-6s (count: %s)\n", i+1, text, s.Kind, utils.FormatWithCommas(s.Count))
	}
}
