package utils

import (
	"regexp"
	"strings"
)

var (
	imgTagPattern   = regexp.MustCompile(`(?i)<img[^>]*>`)
	htmlTagPattern  = regexp.MustCompile(`<[^>]+>`)
	blankRunPattern = regexp.MustCompile(`\n\s*\n`)
)

// CleanHTMLContent strips HTML from ticket bodies, dropping embedded images
// (email signatures) and collapsing extra blank lines, keeping only the
// readable text with line breaks.
func CleanHTMLContent(htmlContent string) string {
	if htmlContent == "" {
		return ""
	}

	text := imgTagPattern.ReplaceAllString(htmlContent, "")

	// Block-level tags become line breaks before the remaining tags go
	replacer := strings.NewReplacer(
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
		"</div>", "\n",
		"</p>", "\n",
	)
	text = replacer.Replace(text)

	text = htmlTagPattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
