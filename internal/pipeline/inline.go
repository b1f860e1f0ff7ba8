package pipeline

import "regexp"

// Inline patterns, applied in declaration order. Later passes run on the output
// of earlier ones, so emphasis is resolved before code spans and links.
var (
	boldPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.*?)\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// FormatInline rewrites emphasis, inline code and links in a single line of text.
// Author input is trusted: angle brackets and quotes are not escaped.
func FormatInline(line string) string {
	line = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
	line = italicPattern.ReplaceAllString(line, "<em>$1</em>")
	line = inlineCodePattern.ReplaceAllString(line, "<code>$1</code>")
	line = linkPattern.ReplaceAllString(line, `<a href="$2">$1</a>`)
	return line
}
