package placeholder

import (
	"regexp"
	"strings"
)

// Category is the kind of value a placeholder asks for.
type Category string

const (
	CategoryAmount  Category = "amount"
	CategoryCompany Category = "company"
	CategoryPerson  Category = "person"
	CategoryDate    Category = "date"
	CategoryAddress Category = "address"
	CategoryEmail   Category = "email"
	CategoryPhone   Category = "phone"
	CategoryOther   Category = "other"
)

// Keyword sets overlap ("effective date of the Company" hits both company
// and date), so Classify tests them in a fixed order and the first hit
// wins.
var (
	amountWords  = []string{"amount", "price", "valuation", "cap", "salary", "fee", "cost", "payment", "purchase", "rent", "dollar"}
	companyWords = []string{"company", "corporation", "entity", "employer", "organization", "business", "firm", "llc", "inc"}
	personWords  = []string{"name", "investor", "employee", "founder", "party", "signatory", "witness", "officer", "director", "landlord", "tenant"}
	dateWords    = []string{"date", "day", "month", "year", "deadline", "term", "expiration"}
	addressWords = []string{"address", "street", "city", "state", "zip", "location", "jurisdiction"}
	emailWords   = []string{"email", "e-mail"}
	phoneWords   = []string{"phone", "telephone", "fax", "mobile"}
)

// Classify assigns exactly one category to a placeholder token.
func Classify(p string) Category {
	trimmed := strings.TrimSpace(p)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(trimmed, "$") || containsAny(lower, amountWords):
		return CategoryAmount
	case containsAny(lower, companyWords):
		return CategoryCompany
	case containsAny(lower, personWords):
		return CategoryPerson
	case containsAny(lower, dateWords):
		return CategoryDate
	case containsAny(lower, addressWords):
		return CategoryAddress
	case containsAny(lower, emailWords):
		return CategoryEmail
	case containsAny(lower, phoneWords):
		return CategoryPhone
	}
	return CategoryOther
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

var underscoreRun = regexp.MustCompile(`_{3,}`)

// Subject strips a placeholder's delimiters and returns the human-readable
// subject inside them, or "this value" when nothing is left.
func Subject(p string) string {
	s := strings.TrimSpace(p)
	s = strings.TrimPrefix(s, "$")
	s = strings.NewReplacer("[", "", "]", "", "{", "", "}", "").Replace(s)
	s = underscoreRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return "this value"
	}
	return s
}
