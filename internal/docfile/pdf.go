package docfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"docfill/internal/subst"
)

// pdfTemplate is the degraded path: PDF content streams cannot be
// rewritten in place by a text extractor, so the template is filled over
// the extracted plain text and the download is a .txt file. The Note
// tells the user about the downgrade up front.
type pdfTemplate struct {
	text  string
	title string
}

func openPDF(data []byte, filename string) (*pdfTemplate, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil, fmt.Errorf("pdf has no extractable text")
	}

	return &pdfTemplate{text: sb.String(), title: titleFromFilename(filename)}, nil
}

func (t *pdfTemplate) Title() string     { return t.title }
func (t *pdfTemplate) PlainText() string { return t.text }

func (t *pdfTemplate) Fill(answers map[string]string) error {
	rewritten, matched := subst.RewriteParagraph([]string{t.text}, answers)
	if matched {
		t.text = rewritten
	}
	return nil
}

func (t *pdfTemplate) Write(w io.Writer) error {
	_, err := w.Write([]byte(t.text))
	return err
}

func (t *pdfTemplate) OutputName(original string) string { return filledName(original, ".txt") }
func (t *pdfTemplate) ContentType() string               { return "text/plain; charset=utf-8" }

func (t *pdfTemplate) Note() string {
	return "PDF layout can't be preserved, so the filled document will download as plain text."
}
