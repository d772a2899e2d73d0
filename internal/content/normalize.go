package content

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var imageMediaTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// Normalize converts a raw user input into structured content. Plain text
// passes through unchanged. Input that names an existing file is dispatched
// on its extension: images become base64 segments, documents become their
// extracted text. Files are reprocessed on every call; nothing is cached.
func Normalize(raw string) (Content, error) {
	path := strings.TrimSpace(raw)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Text(raw), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageMediaTypes[ext] != "":
		return normalizeImage(raw, path, ext)
	case ext == ".pdf":
		return normalizePDF(raw, path, ext)
	case ext == ".docx" || ext == ".doc":
		return normalizeDOCX(raw, path, ext)
	case ext == ".txt":
		return normalizeTextFile(raw, path, ext)
	default:
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: ErrUnsupportedFormat}
	}
}

func normalizeImage(raw, path, ext string) (Content, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
	}
	return Content{
		Raw: raw,
		Segments: []Segment{
			{Kind: KindText, Text: fmt.Sprintf("The user attached the image %q.", filepath.Base(path))},
			{Kind: KindImage, MediaType: imageMediaTypes[ext], Data: base64.StdEncoding.EncodeToString(b)},
		},
	}, nil
}

func normalizePDF(raw, path, ext string) (Content, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
		}
		pages = append(pages, fmt.Sprintf("--- Page %d ---\n%s", i, text))
	}

	body := fmt.Sprintf("Contents of PDF file %q:\n\n%s", filepath.Base(path), strings.Join(pages, "\n\n"))
	return Content{Raw: raw, Segments: []Segment{{Kind: KindText, Text: body}}}, nil
}

func normalizeTextFile(raw, path, ext string) (Content, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
	}
	body := fmt.Sprintf("Contents of file %q:\n\n%s", filepath.Base(path), string(b))
	return Content{Raw: raw, Segments: []Segment{{Kind: KindText, Text: body}}}, nil
}
