package sheet

import "strings"

const (
	DefaultQuestionCount      = 20
	DefaultOptionsPerQuestion = 4

	MinQuestionCount = 1
	MaxQuestionCount = 200
	QuestionStep     = 5

	MinOptionsPerQuestion = 3
	MaxOptionsPerQuestion = 6
)

// Alphabet returns the option letters available when each question offers n choices.
func Alphabet(n int) []string {
	if n < 0 {
		n = 0
	}
	letters := make([]string, 0, n)
	for idx := 0; idx < n; idx++ {
		letters = append(letters, string(rune('A'+idx)))
	}
	return letters
}

// normalizeOption upper-cases a single letter and reports whether it belongs to the
// first n letters of the alphabet.
func normalizeOption(option string, n int) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(option))
	if len(letter) != 1 {
		return "", false
	}
	idx := int(letter[0] - 'A')
	if idx < 0 || idx >= n {
		return "", false
	}
	return letter, true
}

func validOptionsPerQuestion(n int) bool {
	return n >= MinOptionsPerQuestion && n <= MaxOptionsPerQuestion
}
