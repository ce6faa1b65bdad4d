package document

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EmbeddedTitle is the display name of the built-in document.
const EmbeddedTitle = "embedded"

// ErrEmptyDocument is returned when a document has no words.
var ErrEmptyDocument = errors.New("document is empty")

//go:embed baahubali.txt
var embedded string

// Embedded returns the built-in document.
func Embedded() string {
	return embedded
}

// Load returns the document at path, or the embedded document when path is empty.
func Load(path string) (string, error) {
	if path == "" {
		return Embedded(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmptyDocument)
	}
	return text, nil
}

// Title derives a report title from a document path.
func Title(path string) string {
	if path == "" {
		return EmbeddedTitle
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsSupported reports whether path looks like a plain text document.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".text":
		return true
	}
	return false
}
