package docfile

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"docfill/internal/subst"
)

// markdownTemplate fills Markdown source in place, like textTemplate, so
// emphasis and heading syntax around tokens survives verbatim. goldmark
// supplies the document title from the first heading.
type markdownTemplate struct {
	src   string
	title string
}

func openMarkdown(data []byte, filename string) (*markdownTemplate, error) {
	t := &markdownTemplate{src: string(data), title: titleFromFilename(filename)}
	if h := firstHeading(data); h != "" {
		t.title = h
	}
	return t, nil
}

// firstHeading walks the goldmark AST for the first heading's text.
func firstHeading(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return string(h.Text(src))
		}
	}
	return ""
}

func (t *markdownTemplate) Title() string     { return t.title }
func (t *markdownTemplate) PlainText() string { return t.src }

func (t *markdownTemplate) Fill(answers map[string]string) error {
	rewritten, matched := subst.RewriteParagraph([]string{t.src}, answers)
	if matched {
		t.src = rewritten
	}
	return nil
}

func (t *markdownTemplate) Write(w io.Writer) error {
	_, err := w.Write([]byte(t.src))
	return err
}

func (t *markdownTemplate) OutputName(original string) string { return filledName(original, ".md") }
func (t *markdownTemplate) ContentType() string               { return "text/markdown; charset=utf-8" }
func (t *markdownTemplate) Note() string                      { return "" }
