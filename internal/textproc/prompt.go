package textproc

import (
	"errors"
	"strings"
	"unicode"
)

// ErrEmptyPrompt reports that no words could be derived from the input.
var ErrEmptyPrompt = errors.New("textproc: empty prompt")

// BuildPrompt derives a seed prompt from free text: a word-split prefix of
// at most maxWords words with the first word capitalized.
func BuildPrompt(text string, maxWords int) (string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", ErrEmptyPrompt
	}
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	words[0] = capitalize(words[0])
	return strings.Join(words, " "), nil
}

func capitalize(word string) string {
	runes := []rune(word)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}
