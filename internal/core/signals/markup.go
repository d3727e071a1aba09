package signals

import (
	"regexp"
	"strings"
)

// HasHyperlink reports LaTeX or plain URLs in the text. Linked problems
// usually reference images or external statements the grader cannot see.
func HasHyperlink(text string) bool {
	return strings.Contains(text, `\url`) ||
		strings.Contains(text, `\href`) ||
		strings.Contains(text, "http://") ||
		strings.Contains(text, "https://")
}

var emptyBoxedRe = regexp.MustCompile(`\\?boxed\{\s*\}`)

// IsBoxedEmpty reports a solution whose \boxed{} carries no answer.
func IsBoxedEmpty(solution string) bool {
	return emptyBoxedRe.MatchString(solution)
}
