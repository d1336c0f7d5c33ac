package commentary

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	hangulFirst = 0xAC00
	hangulLast  = 0xD7A3
)

// Latin letters read with a trailing consonant sound when spelled out in Korean.
const consonantLetters = "LNRMKTPSXBCDFGHJQVWYZ"

// Particle picks the form of a Korean particle that follows word:
// withBatchim after a final consonant, otherwise without.
func Particle(word, withBatchim, without string) string {
	if word == "" {
		return without
	}
	last, _ := utf8.DecodeLastRuneInString(word)
	if last >= hangulFirst && last <= hangulLast {
		if (last-hangulFirst)%28 != 0 {
			return withBatchim
		}
		return without
	}
	if strings.ContainsRune(consonantLetters, unicode.ToUpper(last)) {
		return withBatchim
	}
	return without
}
