// Package docfile parses uploaded template files into fillable documents
// and serializes them back after substitution. Each supported container
// format gets its own file, mirroring the per-format split of the upload
// formats this service accepts.
package docfile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Template is a parsed, fillable document.
type Template interface {
	// Title is a display name for the document, taken from the container's
	// own metadata when it has any, else from the filename.
	Title() string
	// PlainText returns the flattened text view the placeholder extractor
	// and the enrichment context both read. Substitution sees the same
	// paragraph texts, which is what makes every extracted placeholder
	// replaceable.
	PlainText() string
	// Fill replaces every occurrence of every answered placeholder in the
	// underlying markup, preserving structure per the collapse policy.
	Fill(answers map[string]string) error
	// Write serializes the (possibly filled) document.
	Write(w io.Writer) error
	// OutputName is the suggested download filename.
	OutputName(original string) string
	// ContentType is the mime type of the serialized output.
	ContentType() string
	// Note is a human-readable caveat about this format ("" when none),
	// surfaced in the conversation intro.
	Note() string
}

// SupportedExtensions lists template file extensions this service accepts.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
}

// Open parses raw template bytes using the parser for the file's
// extension.
func Open(data []byte, filename string) (Template, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return openDocx(data, filename)
	case ".txt":
		return openText(data, filename), nil
	case ".md", ".markdown":
		return openMarkdown(data, filename)
	case ".html", ".htm":
		return openHTML(data, filename)
	case ".pdf":
		return openPDF(data, filename)
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// filledName inserts "-filled" before the extension, which may differ
// from the original's for degraded formats.
func filledName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" || base == "." {
		base = "document"
	}
	return base + "-filled" + ext
}

func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
}
