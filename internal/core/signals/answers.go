package signals

import (
	"regexp"
	"strings"
)

var (
	yesNoRe     = regexp.MustCompile(`(?i)(\s|\{|\b)(yes|no)(\s|\}|\b)`)
	trueFalseRe = regexp.MustCompile(`(?i)(\s|\{|\b)(true|false)(\s|\}|\b)`)

	lineEndPunctRe = regexp.MustCompile(`[.,:;!?\s]$`)
)

var yesNoQuestionPrefixes = []string{"is ", "are ", "do ", "does ", "can "}

// IsYesNo reports whether the record resolves to a yes/no answer: the final
// answer when present, otherwise the last line of the solution. Records whose
// answer carries no yes/no token still count when the problem itself reads
// like a yes/no question.
func IsYesNo(problem, finalAnswer, solution string) bool {
	if answerMatches(yesNoRe, finalAnswer, solution) {
		return true
	}
	return soundsLikeYesNoQuestion(problem)
}

// soundsLikeYesNoQuestion checks whether the problem's last line opens with a
// yes/no interrogative. With more than one line, the preceding line must end
// in punctuation or whitespace so mid-sentence wraps don't count.
func soundsLikeYesNoQuestion(problem string) bool {
	lines := strings.Split(problem, "\n")
	if len(lines) > 1 && !lineEndPunctRe.MatchString(lines[len(lines)-2]) {
		return false
	}
	last := strings.ToLower(lines[len(lines)-1])
	for _, prefix := range yesNoQuestionPrefixes {
		if strings.HasPrefix(last, prefix) {
			return true
		}
	}
	return false
}

// IsTrueFalse is the true/false analogue of IsYesNo.
func IsTrueFalse(finalAnswer, solution string) bool {
	return answerMatches(trueFalseRe, finalAnswer, solution)
}

func answerMatches(re *regexp.Regexp, finalAnswer, solution string) bool {
	if finalAnswer != "" {
		return re.MatchString(finalAnswer)
	}
	lines := strings.Split(solution, "\n")
	return re.MatchString(lines[len(lines)-1])
}
