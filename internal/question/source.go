// Package question turns placeholders into the questions the
// conversation asks. Two sources exist: a pure deterministic template
// source that can never fail, and an enrichment source that asks Claude
// for friendlier phrasing and falls back to the deterministic text on any
// failure.
package question

import (
	"context"
	"fmt"

	"docfill/internal/placeholder"
)

// Source produces one question per placeholder, keyed by the placeholder
// itself. Implementations never return a partial batch: callers always
// receive exactly one non-empty question for every input placeholder.
type Source interface {
	QuestionsFor(ctx context.Context, clientID string, placeholders []string, docContext string) map[string]string
}

// TemplateSource derives question text from the placeholder alone. Pure
// and total.
type TemplateSource struct{}

func (TemplateSource) QuestionsFor(_ context.Context, _ string, placeholders []string, _ string) map[string]string {
	out := make(map[string]string, len(placeholders))
	for _, p := range placeholders {
		out[p] = Deterministic(p)
	}
	return out
}

// Deterministic builds the category-specific template question for one
// placeholder.
func Deterministic(p string) string {
	subject := placeholder.Subject(p)
	switch placeholder.Classify(p) {
	case placeholder.CategoryAmount:
		return fmt.Sprintf("What is the dollar amount for %s?", subject)
	case placeholder.CategoryCompany:
		return fmt.Sprintf("What is the company name for %s?", subject)
	case placeholder.CategoryPerson:
		return fmt.Sprintf("What is the full name for %s?", subject)
	case placeholder.CategoryDate:
		return fmt.Sprintf("What date should be used for %s?", subject)
	case placeholder.CategoryAddress:
		return fmt.Sprintf("What is the address for %s?", subject)
	case placeholder.CategoryEmail:
		return fmt.Sprintf("What email address should be used for %s?", subject)
	case placeholder.CategoryPhone:
		return fmt.Sprintf("What phone number should be used for %s?", subject)
	}
	return fmt.Sprintf("What is %s?", subject)
}
