package question

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"docfill/internal/placeholder"
)

const questionPrompt = `You are helping a user fill in the blanks of a legal or business document template. For each placeholder below, write one short, friendly question asking the user for that value.

Rules:
- Return a JSON array of strings, one question per placeholder, in the same order
- Each question must be a single sentence ending in a question mark
- Use the document excerpt only to make the question more specific; never quote long passages back
- Do not number the questions or add any text outside the JSON array`

// BuildQuestionPrompt assembles the batch enrichment prompt: the fixed
// instructions, the classified placeholder list, and a bounded excerpt of
// the document for context.
func BuildQuestionPrompt(placeholders []string, docContext string, maxContext int) string {
	var sb strings.Builder
	sb.WriteString(questionPrompt)
	sb.WriteString("\n\nPlaceholders:\n")
	for i, p := range placeholders {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, p, placeholder.Classify(p)))
	}
	if excerpt := Excerpt(docContext, maxContext); excerpt != "" {
		sb.WriteString("\nDocument excerpt:\n---\n")
		sb.WriteString(excerpt)
		sb.WriteString("\n---\n")
	}
	return sb.String()
}

// Excerpt truncates text to at most n bytes without splitting a rune.
func Excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 || len(text) <= n {
		return text
	}
	cut := text[:n]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
