// Package docload extracts plain text from document files.
//
// Loaders return text only; they do not interpret it. Turning text into
// topics is the job of internal/topicparse.
package docload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/topicgraph/internal/ctxlog"
)

// ErrUnsupportedFormat is returned for files whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format names a supported document format.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Meta describes where a document's text came from.
type Meta struct {
	Path      string `json:"path"`
	Format    Format `json:"format"`
	PageCount int    `json:"page_count,omitempty"`
	CharCount int    `json:"char_count"`
}

// Document is the extracted text of one file.
type Document struct {
	Text string
	Meta Meta
}

// Loader extracts text from a single file.
type Loader interface {
	Load(ctx context.Context, path string) (*Document, error)
}

// AutoLoader selects the loader by file extension.
type AutoLoader struct {
	text Loader
	pdf  Loader
	docx Loader
}

// NewAutoLoader creates an AutoLoader with the default loaders.
func NewAutoLoader() *AutoLoader {
	return &AutoLoader{
		text: NewTextLoader(),
		pdf:  NewPDFLoader(),
		docx: NewDOCXLoader(),
	}
}

// Supported reports whether path has an extension the AutoLoader handles.
func Supported(path string) bool {
	_, ok := formatOf(path)
	return ok
}

func formatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown":
		return FormatText, true
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	default:
		return "", false
	}
}

// Load implements Loader.
func (l *AutoLoader) Load(ctx context.Context, path string) (*Document, error) {
	format, ok := formatOf(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	var loader Loader
	switch format {
	case FormatPDF:
		loader = l.pdf
	case FormatDOCX:
		loader = l.docx
	default:
		loader = l.text
	}

	doc, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Document loaded.",
		"path", path, "format", doc.Meta.Format, "chars", doc.Meta.CharCount, "pages", doc.Meta.PageCount)
	return doc, nil
}

func newDocument(path string, format Format, text string) *Document {
	return &Document{
		Text: text,
		Meta: Meta{
			Path:      path,
			Format:    format,
			CharCount: utf8.RuneCountInString(text),
		},
	}
}
