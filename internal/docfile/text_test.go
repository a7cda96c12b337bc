package docfile

import (
	"bytes"
	"strings"
	"testing"
)

func TestTextTemplate_FillRoundTrip(t *testing.T) {
	src := "Agreement dated [Date] between [Company] and the Investor.\n\nAmount: $[Sum]\n"
	tmpl, err := Open([]byte(src), "deal.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	answers := map[string]string{
		"[Date]":    "March 14, 2026",
		"[Company]": "Acme Inc.",
		"$[Sum]":    "$1,000",
	}
	if err := tmpl.Fill(answers); err != nil {
		t.Fatalf("fill: %v", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()

	for p := range answers {
		if strings.Contains(out, p) {
			t.Errorf("output still contains placeholder %q", p)
		}
	}
	for _, v := range answers {
		if !strings.Contains(out, v) {
			t.Errorf("output missing answer %q", v)
		}
	}
	// Everything outside replaced tokens is byte-identical.
	if !strings.HasPrefix(out, "Agreement dated March 14, 2026 between") {
		t.Errorf("unexpected output prefix: %q", out)
	}
	if !strings.HasSuffix(out, "Amount: $1,000\n") {
		t.Errorf("unexpected output suffix: %q", out)
	}
}

func TestTextTemplate_NoAnswersLeavesSourceUntouched(t *testing.T) {
	src := "Nothing to fill here.\n"
	tmpl, _ := Open([]byte(src), "plain.txt")
	if err := tmpl.Fill(map[string]string{"[X]": "y"}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	tmpl.Write(&buf)
	if buf.String() != src {
		t.Errorf("expected byte-identical output, got %q", buf.String())
	}
}

func TestTextTemplate_TitleFromFilename(t *testing.T) {
	tmpl, _ := Open([]byte("x"), "lease-agreement.txt")
	if tmpl.Title() != "lease-agreement" {
		t.Errorf("expected title from filename, got %q", tmpl.Title())
	}
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	if _, err := Open([]byte("x"), "data.csv"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	supported := []string{"a.docx", "b.txt", "c.md", "d.html", "e.pdf", "F.TXT"}
	for _, f := range supported {
		if !IsSupportedExtension(f) {
			t.Errorf("expected %q to be supported", f)
		}
	}
	for _, f := range []string{"a.csv", "b.exe", "noext"} {
		if IsSupportedExtension(f) {
			t.Errorf("expected %q to be unsupported", f)
		}
	}
}

func TestFilledName(t *testing.T) {
	cases := []struct {
		original, ext, want string
	}{
		{"safe.docx", ".docx", "safe-filled.docx"},
		{"scan.pdf", ".txt", "scan-filled.txt"},
		{"", ".txt", "document-filled.txt"},
	}
	for _, c := range cases {
		if got := filledName(c.original, c.ext); got != c.want {
			t.Errorf("filledName(%q, %q): expected %q, got %q", c.original, c.ext, c.want, got)
		}
	}
}
