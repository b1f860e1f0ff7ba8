package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownHighlightStyle indicates the requested chroma style does not exist.
var ErrUnknownHighlightStyle = errors.New("unknown highlight style")

// ChromaHighlighter renders fenced code with inline styles so pages stay
// self-contained without an extra stylesheet.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style (e.g. "github").
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if !slices.Contains(styles.Names(), styleName) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, styleName)
	}
	return &ChromaHighlighter{
		style:     styles.Get(styleName),
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}, nil
}

// HighlightStyles returns the names of the available chroma styles, sorted.
func HighlightStyles() []string {
	return styles.Names()
}

// Highlight implements Highlighter. Unknown languages fall back to the plain form.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)
