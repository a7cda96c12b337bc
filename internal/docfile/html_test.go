package docfile

import (
	"bytes"
	"strings"
	"testing"
)

const htmlSrc = `<!DOCTYPE html>
<html><head><title>Consulting Agreement</title></head>
<body>
<h1>Consulting Agreement</h1>
<p>This agreement is between <b>[Com</b><i>pany Name]</i> and [Consultant Name].</p>
<p>Plain paragraph with <b>bold</b> and no tokens.</p>
</body></html>`

func TestHTMLTemplate_TitleFromTitleTag(t *testing.T) {
	tmpl, err := Open([]byte(htmlSrc), "upload.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.Title() != "Consulting Agreement" {
		t.Errorf("expected title from <title>, got %q", tmpl.Title())
	}
}

func TestHTMLTemplate_PlainTextSeesSplitToken(t *testing.T) {
	tmpl, _ := Open([]byte(htmlSrc), "upload.html")
	text := tmpl.PlainText()
	if !strings.Contains(text, "[Company Name]") {
		t.Errorf("flattened text should join inline fragments, got %q", text)
	}
	if !strings.Contains(text, "[Consultant Name]") {
		t.Errorf("missing second token in %q", text)
	}
}

func TestHTMLTemplate_FillCollapsesMatchedBlock(t *testing.T) {
	tmpl, _ := Open([]byte(htmlSrc), "upload.html")
	err := tmpl.Fill(map[string]string{
		"[Company Name]":    "Acme Inc.",
		"[Consultant Name]": "Jane Doe",
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "[Com") || strings.Contains(out, "[Consultant Name]") {
		t.Errorf("output still contains placeholder fragments: %q", out)
	}
	if !strings.Contains(out, "Acme Inc.") || !strings.Contains(out, "Jane Doe") {
		t.Errorf("output missing answers: %q", out)
	}
	// Untouched paragraph keeps its inline formatting verbatim.
	if !strings.Contains(out, "<b>bold</b>") {
		t.Errorf("unmatched block lost formatting: %q", out)
	}
}

func TestHTMLTemplate_AnswerValuesAreEscaped(t *testing.T) {
	src := `<html><body><p>[Name]</p></body></html>`
	tmpl, _ := Open([]byte(src), "x.html")
	if err := tmpl.Fill(map[string]string{"[Name]": `<script>alert("hi")</script>`}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	tmpl.Write(&buf)
	if strings.Contains(buf.String(), "<script>") {
		t.Errorf("answer value was not escaped: %q", buf.String())
	}
}
