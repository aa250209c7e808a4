// Package corpus reads the pages to index from disk: either a directory of
// Markdown files (one page each) or a single pages record file.
package corpus

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bastiangx/blockserve/pkg/pages"
	"github.com/charmbracelet/log"
)

// Loader loads a corpus from a file or directory path.
type Loader struct {
	path     string
	maxPages int
	stats    LoaderStats
}

// LoaderStats summarizes the last Load.
type LoaderStats struct {
	Files   int
	Pages   int
	Skipped int
	Bytes   int64
}

// NewLoader creates a Loader. maxPages <= 0 loads everything.
func NewLoader(path string, maxPages int) *Loader {
	return &Loader{path: path, maxPages: maxPages}
}

// Stats returns counters from the last Load.
func (l *Loader) Stats() LoaderStats {
	return l.stats
}

// Load reads the corpus. Directory entries are visited in lexical path
// order so that the page order, and therefore index tie-breaking, is stable.
func (l *Loader) Load() ([]pages.Page, error) {
	l.stats = LoaderStats{}

	info, err := os.Stat(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat corpus %s: %w", l.path, err)
	}
	if !info.IsDir() {
		return l.loadFile(l.path)
	}

	var files []string
	err = filepath.WalkDir(l.path, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != l.path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if DetectFormat(path) == FormatMarkdown {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus dir %s: %w", l.path, err)
	}
	sort.Strings(files)

	var out []pages.Page
	for _, f := range files {
		if l.maxPages > 0 && len(out) >= l.maxPages {
			break
		}
		loaded, err := l.loadFile(f)
		if err != nil {
			log.Warnf("Skipping corpus file %s: %v", f, err)
			l.stats.Skipped++
			continue
		}
		out = append(out, loaded...)
	}
	if l.maxPages > 0 && len(out) > l.maxPages {
		out = out[:l.maxPages]
	}
	l.stats.Pages = len(out)
	log.Debugf("Loaded %d pages from %d files (%d skipped)", l.stats.Pages, l.stats.Files, l.stats.Skipped)
	return out, nil
}

func (l *Loader) loadFile(path string) ([]pages.Page, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported corpus file %s", path)
	}
	if err := ValidateFileFormat(path, format); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	l.stats.Files++
	l.stats.Bytes += int64(len(data))

	switch format {
	case FormatMsgpack:
		r, err := pages.UnmarshalMsgpack(data)
		if err != nil {
			return nil, err
		}
		return r.Pages, nil
	case FormatJSON:
		r, err := pages.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return r.Pages, nil
	default:
		id := path
		if rel, err := filepath.Rel(l.path, path); err == nil && rel != "." {
			id = filepath.ToSlash(rel)
		}
		content := string(data)
		return []pages.Page{{ID: id, Title: Title(content, path), Content: content}}, nil
	}
}

// Title returns the text of the first "# " heading, or the file name
// without its extension.
func Title(content, path string) string {
	for _, line := range strings.Split(content, "\n") {
		if h, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return strings.TrimSpace(h)
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Save writes a pages record to path, choosing the encoding from the
// extension (msgpack or JSON).
func Save(path string, r pages.Record) error {
	var data []byte
	switch DetectFormat(path) {
	case FormatMsgpack:
		b, err := pages.MarshalMsgpack(r)
		if err != nil {
			return err
		}
		data = b
	case FormatJSON:
		var buf bytes.Buffer
		if err := pages.WriteJSON(&buf, r); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("cannot save pages record as %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
