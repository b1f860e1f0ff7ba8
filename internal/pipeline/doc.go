// Package pipeline implements the Markdown-to-HTML body conversion for blog posts.
//
// The package covers the stages that turn a post body into the HTML embedded in the
// page template:
//   - Line ending normalization
//   - Block parsing (headings, lists, pipe tables, code fences, rules, paragraphs)
//   - Inline formatting (bold, italic, inline code, links)
//   - In-article ad injection driven by heading and paragraph counts
//   - Optional syntax highlighting of fenced code via chroma
//   - Reading-time estimation and description excerpts
//   - Page template rendering
//
// Reading metadata headers and writing files is handled by the root md2blog package
// and the CLI. Everything here operates on strings and is safe for concurrent use:
// parse state lives on the stack of a single call.
package pipeline
