package signals

import "strings"

var (
	letterOptions    = []string{"A", "B", "C", "D"}
	numericalOptions = []string{"1", "2", "3", "4"}
)

// IsMultipleChoice reports whether the problem lists answer options, either
// lettered (A-D) or numbered (1-4).
func IsMultipleChoice(problem string) bool {
	return optionsInOrder(problem, letterOptions) || optionsInOrder(problem, numericalOptions)
}

// optionsInOrder checks that every option label occurs and that their last
// occurrences appear in option order. A literal run of all labels (e.g.
// "ABCD" used inside the question itself) is stripped first so it cannot
// masquerade as an option list.
func optionsInOrder(question string, options []string) bool {
	question = strings.ReplaceAll(question, strings.Join(options, ""), "")

	prev := len(question)
	for i := len(options) - 1; i >= 0; i-- {
		idx := strings.LastIndex(question, options[i])
		if idx == -1 {
			return false
		}
		if idx > prev {
			return false
		}
		prev = idx
	}
	return true
}
