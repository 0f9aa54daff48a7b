package docload

import (
	"context"
	"os"
)

// TextLoader reads plain text and markdown files.
type TextLoader struct{}

func NewTextLoader() *TextLoader {
	return &TextLoader{}
}

func (l *TextLoader) Load(ctx context.Context, path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newDocument(path, FormatText, string(content)), nil
}
