// Package subst holds the structure-aware find-and-replace core. It works
// on one paragraph at a time: the paragraph's run fragments are flattened
// into a single string so a token split across run boundaries still
// matches, then every literal occurrence of every answered placeholder is
// replaced. Format-specific appliers in internal/docfile decide how the
// rewritten text is spliced back into their markup.
package subst

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidMarkup is returned when a document's markup cannot be walked
// as paragraphs of runs. Substitution is all-or-nothing: no partial
// rewrite is ever emitted.
var ErrInvalidMarkup = errors.New("invalid document markup")

// RewriteParagraph concatenates the paragraph's run texts, replaces every
// occurrence of every answered placeholder, and reports whether anything
// matched. Placeholders are matched as literal substrings, never as
// patterns. When nothing matches, the joined text is returned unchanged
// and callers must leave the paragraph's runs untouched.
func RewriteParagraph(runs []string, answers map[string]string) (string, bool) {
	text := strings.Join(runs, "")
	keys := matchingKeys(text, answers)
	if len(keys) == 0 {
		return text, false
	}
	for _, k := range keys {
		text = strings.ReplaceAll(text, k, answers[k])
	}
	return text, true
}

// matchingKeys returns the answer keys present in text, longest first so a
// sigil-prefixed token ("$[Amount]") is consumed before its bare bracket
// form ("[Amount]").
func matchingKeys(text string, answers map[string]string) []string {
	var keys []string
	for k := range answers {
		if k != "" && strings.Contains(text, k) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
