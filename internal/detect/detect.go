// Package detect classifies a corpus path before it is loaded.
package detect

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Kind represents a recognized corpus source.
type Kind int

const (
	Unknown   Kind = iota
	Directory      // directory of *.json test files
	JSON           // single JSON test file (top-level array)
	Archive        // txtar archive bundling several test files
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case JSON:
		return "json"
	case Archive:
		return "txtar"
	default:
		return "unknown"
	}
}

// Path stats path and reports its kind. A missing path returns the stat error.
// Regular files are classified by extension first, then by content.
func Path(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return Directory, nil
	}
	if !info.Mode().IsRegular() {
		return Unknown, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".txtar":
		return Archive, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()
	head := make([]byte, 4096)
	n, _ := f.Read(head)
	return Sniff(head[:n]), nil
}

// Sniff examines the first bytes of a file to determine its kind.
func Sniff(data []byte) Kind {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return Unknown
	}
	if trimmed[0] == '[' {
		return JSON
	}
	if isArchive(data) {
		return Archive
	}
	return Unknown
}

// isArchive looks for a txtar file marker line ("-- name --").
func isArchive(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(line) > 6 && bytes.HasPrefix(line, []byte("-- ")) && bytes.HasSuffix(line, []byte(" --")) {
			return true
		}
	}
	return false
}
