package docload

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>1 Introduction</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">This section </w:t></w:r><w:r><w:t>introduces the topic.</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>1.1</w:t><w:tab/><w:t>Scope</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestDOCXLoader(t *testing.T) {
	path := writeDocx(t, map[string]string{"word/document.xml": documentXML})

	doc, err := NewDOCXLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "1 Introduction\nThis section introduces the topic.\n1.1 Scope\n", doc.Text)
	assert.Equal(t, FormatDOCX, doc.Meta.Format)
	assert.Equal(t, len([]rune(doc.Text)), doc.Meta.CharCount)

	t.Run("missing document part", func(t *testing.T) {
		path := writeDocx(t, map[string]string{"word/styles.xml": "<x/>"})
		_, err := NewDOCXLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "word/document.xml not found")
	})
}

func TestTextLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("1 Intro\nhéllo\n"), 0o644))

	doc, err := NewTextLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "1 Intro\nhéllo\n", doc.Text)
	assert.Equal(t, 14, doc.Meta.CharCount)
	assert.Equal(t, path, doc.Meta.Path)
}

func TestAutoLoader(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("dispatches on extension", func(t *testing.T) {
		path := filepath.Join(dir, "notes.TXT")
		require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))
		doc, err := NewAutoLoader().Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, FormatText, doc.Meta.Format)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewAutoLoader().Load(ctx, filepath.Join(dir, "image.png"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		assert.False(t, Supported("image.png"))
		assert.True(t, Supported("report.PDF"))
	})

	t.Run("broken pdf", func(t *testing.T) {
		path := filepath.Join(dir, "broken.pdf")
		require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))
		_, err := NewAutoLoader().Load(ctx, path)
		assert.Error(t, err)
	})
}
