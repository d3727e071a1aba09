package signals

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fracRe        = regexp.MustCompile(`\\frac\{[^{}]*\}\{[^{}]*\}`)
	latexArgRe    = regexp.MustCompile(`\\[a-zA-Z]+\{[^{}]*\}`)
	latexBareRe   = regexp.MustCompile(`\\[a-zA-Z]+`)
	displayMathRe = regexp.MustCompile(`\$\$(.*?)\$\$`)
	inlineMathRe  = regexp.MustCompile(`\$(.*?)\$`)
	specialRe     = regexp.MustCompile("[0-9*,\\.+\\-=\\(\\)/\\^\\[\\]{}|<>~`!@#$%&?_]")
	spaceRe       = regexp.MustCompile(`\s+`)
)

// stripMarkup removes LaTeX commands, math environments, digits and symbol
// noise so only prose is left for script counting.
func stripMarkup(text string) string {
	text = strings.ReplaceAll(text, "\n", "")
	text = fracRe.ReplaceAllString(text, "")
	text = latexArgRe.ReplaceAllString(text, "")
	text = latexBareRe.ReplaceAllString(text, "")
	text = displayMathRe.ReplaceAllString(text, "")
	text = inlineMathRe.ReplaceAllString(text, "")
	text = specialRe.ReplaceAllString(text, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

var scriptCodes = []struct {
	table *unicode.RangeTable
	code  string
}{
	{unicode.Han, "zh"},
	{unicode.Hiragana, "ja"},
	{unicode.Katakana, "ja"},
	{unicode.Hangul, "ko"},
	{unicode.Cyrillic, "ru"},
	{unicode.Greek, "el"},
	{unicode.Arabic, "ar"},
	{unicode.Hebrew, "he"},
	{unicode.Devanagari, "hi"},
	{unicode.Thai, "th"},
}

// DetectLanguage is a script-count heuristic standing in for a full
// language-identification model. Math problems are symbol-heavy, so the
// text is stripped to prose first; anything Latin-dominant (or too short to
// judge) is labelled "en", everything else by its dominant script.
func DetectLanguage(text string) string {
	cleaned := stripMarkup(text)
	if len([]rune(cleaned)) < 10 {
		return "en"
	}

	latin := 0
	counts := make(map[string]int)
	for _, r := range cleaned {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.Is(unicode.Latin, r) {
			latin++
			continue
		}
		for _, s := range scriptCodes {
			if unicode.Is(s.table, r) {
				counts[s.code]++
				break
			}
		}
	}

	best, bestCount := "en", 0
	for code, n := range counts {
		if n > bestCount || (n == bestCount && code < best) {
			best, bestCount = code, n
		}
	}
	if bestCount > latin {
		return best
	}
	return "en"
}
