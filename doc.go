// Package md2blog turns Markdown blog posts into complete, ad-supported HTML pages.
//
// # Quick Start
//
// Create a converter and convert a post:
//
//	conv, err := md2blog.NewConverter(
//	    md2blog.WithSite(md2blog.Site{Name: "My Blog", Author: "Jane Doe"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2blog.Input{
//	    Source:   "---\ntitle: Hello\n---\n# Hello\n\nWorld",
//	    Filename: "hello.md",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Slug+".html", result.HTML, 0644)
//
// The result carries the full page (result.HTML), the rendered body alone
// (result.Body) and the resolved metadata used to fill the page template.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Line ending normalization and front matter extraction
//  2. Block parsing (headings, lists, tables, code fences, rules, paragraphs)
//  3. Inline formatting (bold, italic, inline code, links)
//  4. In-article ad injection after section headings or paragraph runs
//  5. Metadata resolution (defaults, excerpt descriptions, read time, dates)
//  6. Page template rendering
//
// For the body conversion alone, with the default ad placement, use Render:
//
//	html := md2blog.Render("# Title\n\nSome text")
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2blog.NewConverter(
//	    md2blog.WithAds(md2blog.Ads{Enabled: true, Client: "ca-pub-1", InArticleSlot: "42"}),
//	    md2blog.WithAdPolicy(md2blog.AdPolicy{AfterHeadings: []int{1}, MinParagraphs: 10, MaxHeadings: 2, ParagraphInterval: 5}),
//	    md2blog.WithHighlightStyle("github"),
//	    md2blog.WithAssetPath("/path/to/custom/assets"),
//	    md2blog.WithStrict(true),
//	)
//
// # Custom Assets
//
// The page template and stylesheet can be overridden from a directory:
//
//	assets/
//	├── styles/
//	│   └── blog.css
//	└── templates/
//	    ├── post.html
//	    └── in-article.html
//
// Missing files fall back to the embedded defaults.
//
// # Concurrency
//
// A Converter is immutable after construction and safe for concurrent use by
// multiple goroutines. Parse state lives on the stack of a single call.
//
// # Error Handling
//
// Errors are wrapped with sentinel values for classification:
//
//	if errors.Is(err, md2blog.ErrInvalidDate) {
//	    // front matter date is not YYYY-MM-DD
//	}
//
// Malformed bodies never fail the conversion on their own: an unclosed code
// block or table is closed at end of input and reported in result.Diagnostics.
// With WithStrict(true) such posts are rejected with ErrUnterminatedBlock.
package md2blog
