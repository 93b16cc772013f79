package conv

import (
	"regexp"
	"strings"
)

var (
	reasoningBlock = regexp.MustCompile(`(?is)<reasoning>.*?</reasoning>`)
	reasoningTag   = regexp.MustCompile(`(?i)</?reasoning>`)
	blankRuns      = regexp.MustCompile(`\n\s*\n\s*\n`)
)

// StripReasoning removes <reasoning> blocks and stray tags some models emit,
// squeezes runs of blank lines and trims the result.
func StripReasoning(raw string) string {
	s := raw
	// removing a tag can splice its neighbours into a new one
	for reasoningBlock.MatchString(s) || reasoningTag.MatchString(s) {
		s = reasoningBlock.ReplaceAllString(s, "")
		s = reasoningTag.ReplaceAllString(s, "")
	}
	// a single pass can leave a new run behind when \s swallowed newlines
	for blankRuns.MatchString(s) {
		s = blankRuns.ReplaceAllString(s, "\n\n")
	}
	return strings.TrimSpace(s)
}

// Words splits text for the typewriter effect. Joining the chunks gives the
// original text back.
func Words(text string) []string {
	parts := strings.Split(text, " ")
	for i := 1; i < len(parts); i++ {
		parts[i] = " " + parts[i]
	}
	return parts
}
