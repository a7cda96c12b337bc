package docfile

import (
	"io"
	"strings"

	"docfill/internal/subst"
)

// textTemplate handles plain text files. The source text is its own
// markup: every paragraph is a single run, so filling is a literal
// replacement pass and the output is byte-identical outside replaced
// tokens.
type textTemplate struct {
	src   string
	title string
}

func openText(data []byte, filename string) *textTemplate {
	return &textTemplate{src: string(data), title: titleFromFilename(filename)}
}

func (t *textTemplate) Title() string     { return t.title }
func (t *textTemplate) PlainText() string { return t.src }

func (t *textTemplate) Fill(answers map[string]string) error {
	rewritten, matched := subst.RewriteParagraph([]string{t.src}, answers)
	if matched {
		t.src = rewritten
	}
	return nil
}

func (t *textTemplate) Write(w io.Writer) error {
	_, err := io.Copy(w, strings.NewReader(t.src))
	return err
}

func (t *textTemplate) OutputName(original string) string { return filledName(original, ".txt") }
func (t *textTemplate) ContentType() string               { return "text/plain; charset=utf-8" }
func (t *textTemplate) Note() string                      { return "" }
