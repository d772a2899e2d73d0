package content

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// normalizeDOCX extracts paragraph text from a DOCX file. A DOCX is a zip
// archive whose main document part is WordprocessingML; text lives in <w:t>
// runs grouped into <w:p> paragraphs.
func normalizeDOCX(raw, path, ext string) (Content, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
	}
	defer zr.Close()

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: errors.New("no word/document.xml in archive")}
	}

	rc, err := doc.Open()
	if err != nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
	}
	defer rc.Close()

	paragraphs, err := wordParagraphs(rc)
	if err != nil {
		return Content{}, &ExtractionError{Path: path, Ext: ext, Err: err}
	}

	body := fmt.Sprintf("Contents of DOCX file %q:\n\n%s", filepath.Base(path), strings.Join(paragraphs, "\n\n"))
	return Content{Raw: raw, Segments: []Segment{{Kind: KindText, Text: body}}}, nil
}

func wordParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(current.String()); s != "" {
					paragraphs = append(paragraphs, s)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
