package session

import "unicode/utf8"

// estimateTokens approximates a token count from message text. Used only as
// a fallback when an assistant line carries no usage block, so totals stay
// roughly comparable instead of silently dropping to zero.
//
// Most BPE tokenizers land around 3-4 chars/token for English-ish text;
// bytes/3 is a decent bound, also bounded by runes/2 so mostly-ASCII short
// tokens are not undercounted.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	byBytes := len(text) / 3
	byRunes := utf8.RuneCountInString(text) / 2
	if byBytes < byRunes {
		return byRunes
	}
	return byBytes
}
