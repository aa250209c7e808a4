package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat identifies how a corpus file is decoded.
type FileFormat int

const (
	FormatUnknown  FileFormat = iota
	FormatMarkdown            // one page per file
	FormatMsgpack             // pages record, msgpack
	FormatJSON                // pages record, JSON
)

// FormatInfo describes a supported format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatMarkdown: {
		Format:      FormatMarkdown,
		Description: "Markdown page",
		Extensions:  []string{".md", ".markdown", ".txt"},
		MinSize:     0,
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "Pages record (msgpack)",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1,
	},
	FormatJSON: {
		Format:      FormatJSON,
		Description: "Pages record (JSON)",
		Extensions:  []string{".json"},
		MinSize:     2,
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFormat picks a format from the file extension.
func DetectFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if e == ext {
				return format
			}
		}
	}
	return FormatUnknown
}

// ValidateFileFormat checks that filename exists, is a regular file and is
// large enough for expectedFormat.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if !fileInfo.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format for %s", filename)
	}
	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}
	return nil
}
