package content

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wordprocessingNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func writeDOCX(t *testing.T, paragraphs []string) string {
	t.Helper()

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	doc.WriteString(`<w:document xmlns:w="` + wordprocessingNS + `"><w:body>`)
	for _, p := range paragraphs {
		doc.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	doc.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(doc.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestNormalize_DOCX(t *testing.T) {
	path := writeDOCX(t, []string{"First paragraph.", "Second paragraph."})

	c, err := Normalize(path)
	require.NoError(t, err)

	assert.False(t, c.HasImages())
	text := c.PromptText()
	assert.Contains(t, text, "report.docx")
	assert.Contains(t, text, "First paragraph.")
	assert.Contains(t, text, "Second paragraph.")

	// Paragraph order is preserved
	assert.Less(t, strings.Index(text, "First paragraph."), strings.Index(text, "Second paragraph."))
}

func TestNormalize_DOCXWithoutDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("unrelated.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "odd.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err = Normalize(path)
	require.Error(t, err)

	var extractionErr *ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestWordParagraphs_SkipsEmptyParagraphs(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="` + wordprocessingNS + `"><w:body>` +
		`<w:p><w:r><w:t>kept</w:t></w:r></w:p>` +
		`<w:p></w:p>` +
		`<w:p><w:r><w:t>  </w:t></w:r></w:p>` +
		`</w:body></w:document>`

	paragraphs, err := wordParagraphs(strings.NewReader(xmlDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, paragraphs)
}
