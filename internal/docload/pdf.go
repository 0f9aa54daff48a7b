package docload

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
)

// PDFLoader extracts text with ledongthuc/pdf and reads the page count with
// pdfcpu, which is more tolerant of damaged cross-reference tables.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

func (l *PDFLoader) Load(ctx context.Context, path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	totalPage := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}
		buf.WriteString(text)
		// Keep page boundaries as line breaks so headers stay at line starts.
		buf.WriteString("\n")
	}

	doc := newDocument(path, FormatPDF, buf.String())
	doc.Meta.PageCount = totalPage
	if n, err := api.PageCountFile(path); err != nil {
		ctxlog.FromContext(ctx).Warn("pdfcpu could not count pages, using the text reader's count.", "path", path, "error", err)
	} else {
		doc.Meta.PageCount = n
	}
	return doc, nil
}
