package game

import "strings"

const maxAnswerLength = 40

// AnswerResult is the validator's classification of one raw answer.
type AnswerResult struct {
	Text   string
	Status string
}

// ProcessAnswer normalizes a raw answer and classifies it against the
// round's required starting letter and the dictionary. It is pure: the same
// inputs always produce the same result, and nothing is mutated.
//
// An empty requiredLetter disables the starting-letter check.
func ProcessAnswer(dict *Dictionary, raw, requiredLetter, category string) AnswerResult {
	text := normalizeAnswer(capAnswer(raw))
	if text == "" {
		return AnswerResult{Text: "", Status: StatusEmpty}
	}
	letter := normalizeAnswer(requiredLetter)
	if !strings.HasPrefix(text, letter) {
		return AnswerResult{Text: text, Status: StatusInvalid}
	}
	if dict != nil && dict.HasExact(category, text) {
		return AnswerResult{Text: text, Status: StatusValidAuto}
	}
	return AnswerResult{Text: text, Status: StatusPending}
}

// capAnswer truncates oversized input instead of rejecting it.
func capAnswer(raw string) string {
	runes := []rune(raw)
	if len(runes) <= maxAnswerLength {
		return raw
	}
	return string(runes[:maxAnswerLength])
}
