package textproc

import (
	"errors"
	"regexp"
)

// ErrNoWellFormedSentence reports that after rewriting no substring of the
// input qualifies as a complete sentence. Callers decide the fallback.
var ErrNoWellFormedSentence = errors.New("textproc: no well-formed sentence in input")

// rewriteRule is one pattern/replacement pair of the cleaning table.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rewriteRules is the cleaning table applied to raw model output and scraped
// text. The order is load-bearing: period collapsing assumes brackets and
// footnote markers are already gone, and whitespace collapsing runs after
// every rule that can leave gaps behind. Each rule rewrites the full running
// string produced by the previous one.
var rewriteRules = []rewriteRule{
	{regexp.MustCompile(`\n`), " "},
	{regexp.MustCompile(`\\'`), "’"},
	{regexp.MustCompile(`\[.+?\]`), ""},
	{regexp.MustCompile(`\[.+?\.`), "."},
	{regexp.MustCompile(`  [0-9]+.`), ""},
	{regexp.MustCompile(`\(\?\)`), ""},
	{regexp.MustCompile(`\([0-9]{1,2}\)`), ""},
	{regexp.MustCompile(`[<>]`), ""},
	{regexp.MustCompile(`\.+`), "."},
	{regexp.MustCompile(` \. `), ". "},
	{regexp.MustCompile(`\|\|[A-Z]+\|`), ""},
	{regexp.MustCompile(`(\.)[A-Za-z0-9]+`), ". "},
	{regexp.MustCompile(` {2,}`), " "},
	{regexp.MustCompile(`(.")[A-Za-z0-9]`), `. "`},
}

// wellFormedSentence matches text that starts like a sentence (capital
// letter, then lowercase) and runs to a terminating period. Greedy, so it
// keeps every complete sentence and drops only the truncated tail.
var wellFormedSentence = regexp.MustCompile(`^[A-Z][a-z]+.+\.`)

// Normalize runs the rewrite table over raw text and extracts the leading
// well-formed sentence block. It returns ErrNoWellFormedSentence when the
// cleaned text never settles into a capitalized, period-terminated unit.
func Normalize(raw string) (string, error) {
	cleaned := raw
	for _, rule := range rewriteRules {
		cleaned = rule.pattern.ReplaceAllString(cleaned, rule.replacement)
	}

	sentence := wellFormedSentence.FindString(cleaned)
	if sentence == "" {
		return "", ErrNoWellFormedSentence
	}
	return sentence, nil
}
