package docfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"docfill/internal/subst"
)

// htmlTemplate treats each block-level element as a paragraph and its
// descendant text nodes as the run fragments. Filling puts the rewritten
// text into the block's first text node and empties the rest, so inline
// tags survive (possibly emptied) and the document structure is never
// reordered.
type htmlTemplate struct {
	root  *html.Node
	title string
}

var blockTags = map[string]bool{
	"p": true, "li": true, "td": true, "th": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func openHTML(data []byte, filename string) (*htmlTemplate, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	t := &htmlTemplate{root: root, title: titleFromFilename(filename)}
	if title := findTitle(root); title != "" {
		t.title = title
	}
	return t, nil
}

func (t *htmlTemplate) Title() string { return t.title }

func (t *htmlTemplate) PlainText() string {
	var sb strings.Builder
	forEachBlock(t.root, func(block *html.Node) {
		texts := textNodes(block)
		var para strings.Builder
		for _, n := range texts {
			para.WriteString(n.Data)
		}
		p := strings.TrimSpace(para.String())
		if p == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p)
	})
	return sb.String()
}

func (t *htmlTemplate) Fill(answers map[string]string) error {
	if t.root == nil {
		return subst.ErrInvalidMarkup
	}
	forEachBlock(t.root, func(block *html.Node) {
		texts := textNodes(block)
		if len(texts) == 0 {
			return
		}
		runs := make([]string, len(texts))
		for i, n := range texts {
			runs[i] = n.Data
		}
		rewritten, matched := subst.RewriteParagraph(runs, answers)
		if !matched {
			return
		}
		texts[0].Data = rewritten
		for _, n := range texts[1:] {
			n.Data = ""
		}
	})
	return nil
}

func (t *htmlTemplate) Write(w io.Writer) error {
	// html.Render escapes text node data, so answer values cannot inject
	// markup.
	return html.Render(w, t.root)
}

func (t *htmlTemplate) OutputName(original string) string { return filledName(original, ".html") }
func (t *htmlTemplate) ContentType() string               { return "text/html; charset=utf-8" }
func (t *htmlTemplate) Note() string                      { return "" }

// forEachBlock visits block-level elements in document order without
// recursing into them, skipping non-content containers.
func forEachBlock(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		switch {
		case blockTags[n.Data]:
			fn(n)
			return
		case n.Data == "script" || n.Data == "style":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		forEachBlock(c, fn)
	}
}

// textNodes collects a block's descendant text nodes in document order.
func textNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for _, t := range textNodes(n) {
			sb.WriteString(t.Data)
		}
		return strings.TrimSpace(sb.String())
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}
