package md2blog_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2blog"
)

// Example converts a post with front matter into a page.
func Example() {
	conv, err := md2blog.NewConverter(
		md2blog.WithSite(md2blog.Site{Name: "My Blog", Author: "Jane Doe"}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2blog.Input{
		Source:   "---\ntitle: Hello\ndate: 2025-06-01\n---\n# Hello\n\nFirst post.",
		Filename: "hello.md",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Slug)
	fmt.Println(result.Metadata.DisplayDate)
	fmt.Println(result.Metadata.Description)
	// Output:
	// hello
	// June 01, 2025
	// First post.
}

// ExampleRender converts a body with the default ad placement.
func ExampleRender() {
	html := md2blog.Render("# Title\n\nSome *emphasis* and `code`.")
	fmt.Println(html)
	// Output:
	// <h1>Title</h1>
	//
	// <p>Some <em>emphasis</em> and <code>code</code>.</p>
}

// Example_ads enables in-article ads with a custom placement policy.
func Example_ads() {
	conv, err := md2blog.NewConverter(
		md2blog.WithAds(md2blog.Ads{Enabled: true, Client: "ca-pub-1", InArticleSlot: "42"}),
		md2blog.WithAdPolicy(md2blog.AdPolicy{AfterHeadings: []int{1}, MinParagraphs: 15, MaxHeadings: 3, ParagraphInterval: 8}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(context.Background(), md2blog.Input{Source: "## Setup\n\nInstall it."})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Count(result.Body, `data-ad-slot="42"`))
	// Output: 1
}

// Example_strict shows how strict mode rejects an unclosed code block.
func Example_strict() {
	conv, err := md2blog.NewConverter(
		md2blog.WithStrict(true),
		md2blog.WithNow(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, err = conv.Convert(context.Background(), md2blog.Input{Source: "```go\nfmt.Println()"})
	fmt.Println(errors.Is(err, md2blog.ErrUnterminatedBlock))
	// Output: true
}
