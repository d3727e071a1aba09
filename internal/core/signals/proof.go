package signals

import "strings"

// IsProof reports whether the problem asks for a proof. Records from the
// olympiads subset additionally count any sentence opening with "show",
// which that source uses for prove-style prompts.
func IsProof(problem, source string) bool {
	lower := strings.ToLower(problem)
	if strings.Contains(lower, "prove that") || strings.Contains(lower, "a proof") {
		return true
	}

	if source == "olympiads" {
		for _, sentence := range splitSentences(lower) {
			if strings.HasPrefix(strings.TrimSpace(sentence), "show") {
				return true
			}
		}
	}
	return false
}

// splitSentences is a rough tokenizer: terminal punctuation followed by
// whitespace. Good enough for a prefix check.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t') {
			sentences = append(sentences, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
