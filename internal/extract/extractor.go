// Package extract provides text extraction from document files.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// SupportedExtensions lists the file extensions the extractor accepts,
// with leading dots. Directory expansion during ingest filters on these.
func SupportedExtensions() []string {
	return []string{".pdf", ".txt", ".md", ".text", ".rst"}
}

// Extract reads the file at path and returns its text content.
// Plain text files (.txt, .md, .text, .rst) are returned as-is, UTF-8 validated.
// PDF text is extracted page by page. Any other extension is an
// unsupported-format error; the caller records it per file and moves on.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".txt", ".md", ".text", ".rst":
		return extractPlain(content)
	default:
		return "", fmt.Errorf("unsupported file format %q", ext)
	}
}
