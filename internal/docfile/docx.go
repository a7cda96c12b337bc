package docfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"docfill/internal/subst"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// docxTemplate fills .docx files in place on the parsed document tree, so
// everything outside matched paragraphs round-trips untouched.
type docxTemplate struct {
	doc   *docx.Docx
	title string
}

func openDocx(data []byte, filename string) (*docxTemplate, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return &docxTemplate{doc: doc, title: titleFromFilename(filename)}, nil
}

func (t *docxTemplate) Title() string { return t.title }

func (t *docxTemplate) PlainText() string {
	var sb strings.Builder
	for _, item := range t.doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(runTexts(para), ""))
	}
	return sb.String()
}

func (t *docxTemplate) Fill(answers map[string]string) error {
	if t.doc == nil {
		return subst.ErrInvalidMarkup
	}
	for _, item := range t.doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		fillParagraph(para, answers)
	}
	return nil
}

func (t *docxTemplate) Write(w io.Writer) error {
	// encoding/xml escapes reserved characters in w:t chardata, so answer
	// values can never be misread as markup.
	_, err := t.doc.WriteTo(w)
	return err
}

func (t *docxTemplate) OutputName(original string) string { return filledName(original, ".docx") }
func (t *docxTemplate) ContentType() string               { return docxContentType }
func (t *docxTemplate) Note() string                      { return "" }

// runTexts flattens a paragraph's runs into their text fragments, in
// order. Concatenating them yields the paragraph's plain text exactly as
// the extractor sees it, which is the invariant cross-run matching relies
// on.
func runTexts(para *docx.Paragraph) []string {
	var runs []string
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, rc := range run.Children {
			if txt, ok := rc.(*docx.Text); ok {
				sb.WriteString(txt.Text)
			}
		}
		runs = append(runs, sb.String())
	}
	return runs
}

// fillParagraph rewrites one paragraph. A matched paragraph collapses to
// a single run carrying the first run's properties; later runs are
// discarded, so sub-span formatting is lost there. Non-run children and
// unmatched paragraphs are left exactly as parsed. A placeholder the
// document splits across runs is matched by the flattened text and
// replaced by the collapse.
func fillParagraph(para *docx.Paragraph, answers map[string]string) {
	runs := runTexts(para)
	if len(runs) == 0 {
		return
	}
	rewritten, matched := subst.RewriteParagraph(runs, answers)
	if !matched {
		return
	}

	kept := make([]interface{}, 0, len(para.Children))
	var first *docx.Run
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			kept = append(kept, child)
			continue
		}
		if first == nil {
			first = run
			kept = append(kept, run)
		}
	}
	first.Children = []interface{}{
		&docx.Text{Text: rewritten, XMLSpace: "preserve"},
	}
	para.Children = kept
}
