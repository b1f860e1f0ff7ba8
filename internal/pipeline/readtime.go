package pipeline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// WordsPerMinute is the reading speed used for read-time estimates.
const WordsPerMinute = 200

// WordCounter counts readable words in Markdown using goldmark's parser, so
// link targets, emphasis markers and table pipes are not counted as words.
type WordCounter struct {
	md goldmark.Markdown
}

// NewWordCounter creates a WordCounter with GFM extensions (tables, strikethrough).
func NewWordCounter() *WordCounter {
	return &WordCounter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Count returns the number of words in prose and code blocks.
func (w *WordCounter) Count(markdown string) int {
	src := []byte(markdown)
	doc := w.md.Parser().Parse(text.NewReader(src))

	words := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			words += len(strings.Fields(string(node.Segment.Value(src))))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				words += len(strings.Fields(string(seg.Value(src))))
			}
		}
		return ast.WalkContinue, nil
	})
	return words
}

// ReadTime formats an estimate such as "4 min read". Anything shorter than a
// minute rounds up to one.
func ReadTime(words int) string {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
