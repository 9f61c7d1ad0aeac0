package services

import (
	"regexp"
	"strings"
)

var (
	urlRe       = regexp.MustCompile(`http\S+`)
	nonLetterRe = regexp.MustCompile(`[^a-zA-Z ]`)
)

// CleanText strips URL-like runs, drops everything that is not an ASCII
// letter or a space, and lower-cases the rest. Output always matches
// ^[a-z ]*$ and CleanText(CleanText(x)) == CleanText(x).
func CleanText(text string) string {
	text = urlRe.ReplaceAllString(text, "")
	text = nonLetterRe.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	// "HTTPS://x" only becomes "httpsx" after the two steps above
	return urlRe.ReplaceAllString(text, "")
}
