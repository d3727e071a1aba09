package signals

import (
	"regexp"
	"strings"
)

// The patterns cover the part-numbering styles seen in the corpus: roman
// numerals in parentheses, numbered parentheses, numbered periods, and
// circled digits. They run against the lowercased problem text.
var multiPartPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\([IⅠ\s,\.]\).*\([IⅡ\s,\.]\)`),
	regexp.MustCompile(`\([1-9][^\)]*\).*\([1-9][^\)]*\)`),
	regexp.MustCompile(`(?:\d+\.).*(?:\d+\.)`),
	regexp.MustCompile(`\(I+\).*\(I+\)`),
	regexp.MustCompile(`(?:(?:^|\s)(?:1[.\)]|[Ii][.\)]|①).*(?:\s|$)(?:2[.\)]|[Ii]{2}[.\)]|②))`),
}

// IsMultiPart reports whether the problem asks several sub-questions.
func IsMultiPart(problem string) bool {
	lower := strings.ToLower(problem)
	for _, re := range multiPartPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
