package placeholder

import (
	"regexp"
	"strings"
)

// tokenPattern recognizes the placeholder shapes that appear in template
// documents: bracketed tokens with an optional currency sigil ("[Company
// Name]", "$[Purchase Amount]", "[TBD]", "[ ]"), curly-braced tokens
// ("{Governing Law}"), and runs of three or more underscores used as
// blank-fill lines. Alternatives are mutually exclusive by delimiter, so
// matches never overlap. Delimited tokens stop at line breaks: a stray
// unclosed bracket must not swallow text from a later paragraph, because
// substitution works paragraph by paragraph and could never replace such
// a token.
var tokenPattern = regexp.MustCompile(`(?i)\$?\[[^\]\r\n]*\]|\{[^}\r\n]+\}|_{3,}`)

// Extract scans text for placeholder tokens and returns the distinct
// tokens in first-occurrence order. Tokens are trimmed of surrounding
// whitespace; whitespace-only matches are dropped.
func Extract(text string) []string {
	matches := tokenPattern.FindAllString(text, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
