package docload

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DOCXLoader extracts paragraph text from .docx files, one paragraph per line.
type DOCXLoader struct{}

func NewDOCXLoader() *DOCXLoader {
	return &DOCXLoader{}
}

func (l *DOCXLoader) Load(ctx context.Context, path string) (*Document, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx zip: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("invalid docx: word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	text, err := parseDocxXML(rc)
	if err != nil {
		return nil, fmt.Errorf("invalid docx xml: %w", err)
	}
	return newDocument(path, FormatDOCX, text), nil
}

// parseDocxXML streams the document body and writes every non-empty paragraph
// on its own line. Tabs and breaks inside a paragraph become spaces.
func parseDocxXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var result, para strings.Builder
	inParagraph, inText := false, false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch se := tok.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "p":
				inParagraph = true
				para.Reset()
			case "t":
				inText = true
			case "tab", "br":
				if inParagraph {
					para.WriteByte(' ')
				}
			}
		case xml.CharData:
			if inParagraph && inText {
				para.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "t":
				inText = false
			case "p":
				if text := strings.TrimSpace(para.String()); inParagraph && text != "" {
					result.WriteString(text)
					result.WriteByte('\n')
				}
				inParagraph = false
			}
		}
	}
	return result.String(), nil
}
