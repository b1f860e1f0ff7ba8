package pipeline

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultExcerptLength is the rune budget for generated descriptions,
// matching what search engines show for a meta description.
const DefaultExcerptLength = 160

// ellipsis marks a truncated excerpt.
const ellipsis = "…"

// Excerpt returns the plain text of the first non-empty paragraph of a rendered
// body, whitespace-collapsed and cut at a word boundary to at most maxLen runes.
// Returns "" when the body has no paragraph text or cannot be parsed.
func Excerpt(body string, maxLen int) string {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(body), context)
	if err != nil {
		return ""
	}

	for _, n := range nodes {
		if text := firstParagraphText(n); text != "" {
			return truncateWords(text, maxLen)
		}
	}
	return ""
}

// firstParagraphText walks the tree depth-first and returns the collapsed text
// of the first <p> that has any.
func firstParagraphText(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.P {
		var b strings.Builder
		collectText(n, &b)
		return strings.Join(strings.Fields(b.String()), " ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := firstParagraphText(c); text != "" {
			return text
		}
	}
	return ""
}

// collectText appends text nodes, skipping script and style content.
func collectText(n *html.Node, b *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
		return
	case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// truncateWords shortens s to at most maxLen runes including the ellipsis.
func truncateWords(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:maxLen-utf8.RuneCountInString(ellipsis)])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:.") + ellipsis
}
