package placeholder

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var stateNames = map[string]string{
	"al": "Alabama", "ak": "Alaska", "az": "Arizona", "ar": "Arkansas",
	"ca": "California", "co": "Colorado", "ct": "Connecticut", "de": "Delaware",
	"fl": "Florida", "ga": "Georgia", "hi": "Hawaii", "id": "Idaho",
	"il": "Illinois", "in": "Indiana", "ia": "Iowa", "ks": "Kansas",
	"ky": "Kentucky", "la": "Louisiana", "me": "Maine", "md": "Maryland",
	"ma": "Massachusetts", "mi": "Michigan", "mn": "Minnesota", "ms": "Mississippi",
	"mo": "Missouri", "mt": "Montana", "ne": "Nebraska", "nv": "Nevada",
	"nh": "New Hampshire", "nj": "New Jersey", "nm": "New Mexico", "ny": "New York",
	"nc": "North Carolina", "nd": "North Dakota", "oh": "Ohio", "ok": "Oklahoma",
	"or": "Oregon", "pa": "Pennsylvania", "ri": "Rhode Island", "sc": "South Carolina",
	"sd": "South Dakota", "tn": "Tennessee", "tx": "Texas", "ut": "Utah",
	"vt": "Vermont", "va": "Virginia", "wa": "Washington", "wv": "West Virginia",
	"wi": "Wisconsin", "wy": "Wyoming",
	"dc": "District of Columbia", "pr": "Puerto Rico", "gu": "Guam", "vi": "U.S. Virgin Islands",
}

var entitySuffixes = map[string]string{
	"llc":  "LLC",
	"corp": "Corp.",
	"inc":  "Inc.",
}

// dateFormat is the fixed human-readable form for resolved relative dates.
const dateFormat = "January 2, 2006"

// Normalize canonicalizes a raw answer before it is stored. The hint is
// the placeholder the answer belongs to; it only influences the monetary
// rule. Never fails: when no rule applies the trimmed input is returned
// unchanged.
func Normalize(raw, hint string) string {
	return normalizeAt(raw, hint, time.Now())
}

func normalizeAt(raw, hint string, now time.Time) string {
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return answer
	}
	if full, ok := stateNames[strings.ToLower(answer)]; ok {
		return full
	}
	if d, ok := relativeDate(answer, now); ok {
		return d
	}
	if Classify(hint) == CategoryAmount {
		if n, ok := parseAmount(answer); ok {
			return "$" + groupThousands(n)
		}
	}
	return fixEntitySuffix(answer)
}

func relativeDate(answer string, now time.Time) (string, bool) {
	var days int
	switch strings.ToLower(answer) {
	case "today":
		days = 0
	case "tomorrow":
		days = 1
	case "yesterday":
		days = -1
	case "next week":
		days = 7
	case "last week":
		days = -7
	default:
		return "", false
	}
	return now.AddDate(0, 0, days).Format(dateFormat), true
}

var amountPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$|^\d+$`)

func parseAmount(answer string) (int64, bool) {
	if !amountPattern.MatchString(answer) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(answer, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// fixEntitySuffix canonicalizes a trailing business-entity abbreviation
// and tidies all-lowercase company names around it ("abc llc" -> "ABC
// LLC"). Words of three letters or fewer are treated as acronyms; words
// already carrying capitals are left alone.
func fixEntitySuffix(answer string) string {
	words := strings.Fields(answer)
	if len(words) < 2 {
		return answer
	}
	last := strings.ToLower(strings.TrimSuffix(words[len(words)-1], "."))
	canonical, ok := entitySuffixes[last]
	if !ok {
		return answer
	}
	out := make([]string, len(words))
	for i, w := range words[:len(words)-1] {
		out[i] = capitalizeWord(w)
	}
	out[len(words)-1] = canonical
	return strings.Join(out, " ")
}

func capitalizeWord(w string) string {
	if w != strings.ToLower(w) {
		return w // already cased by the user
	}
	if len(w) <= 3 {
		return strings.ToUpper(w)
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
