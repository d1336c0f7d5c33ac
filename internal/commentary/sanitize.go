package commentary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	closingSentence = "추가 검증을 통해 해석의 견고성을 확보하는 것이 중요합니다."
	maxRunes        = 400
	keepSentences   = 3
)

var (
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
	codeFencePattern = regexp.MustCompile("(?s)```.*?```")
	mdLinkPattern    = regexp.MustCompile(`\[.*?\]\(.*?\)`)
	urlPattern       = regexp.MustCompile(`https?://\S+`)
)

// Sanitize strips markup, code blocks, links and bare URLs.
func Sanitize(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = codeFencePattern.ReplaceAllString(text, "")
	text = mdLinkPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Truncate keeps the first three sentences of text longer than 400 characters.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	parts := strings.Split(text, ".")
	if len(parts) > keepSentences {
		parts = parts[:keepSentences]
	}
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ". ") + "."
}

// EnsureClosing appends the closing sentence unless the text already makes the same point.
func EnsureClosing(text string) string {
	if strings.Contains(text, "추가 검증") || strings.Contains(text, "견고성") {
		return text
	}
	if !strings.HasSuffix(text, ".") {
		text += "."
	}
	return text + " " + closingSentence
}

// Finalize runs the full post-processing chain on a raw LLM reply. An empty
// result means nothing usable survived.
func Finalize(reply string) string {
	text := Sanitize(reply)
	if text == "" {
		return ""
	}
	return EnsureClosing(Truncate(text))
}
