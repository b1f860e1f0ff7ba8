// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config directory when it was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "go-md2blog/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoPosts returns a hint when discovery found nothing to build.
func ForNoPosts(skipped []string) string {
	hint := "posts must end in .md or .markdown"
	if len(skipped) > 0 {
		hint += "; skipped by config: " + strings.Join(skipped, ", ")
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, or use --output")
}

// ForInvalidDate returns hints for front matter dates that fail to parse.
func ForInvalidDate() string {
	return format(`use date: YYYY-MM-DD or date: auto`)
}

// ForHighlightStyle returns hints listing a few known chroma styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	const maxShown = 8
	if len(available) > maxShown {
		available = append(available[:maxShown:maxShown], "...")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForAdFragment returns hints for an in-article template that would be
// counted as content by the ad placement pass.
func ForAdFragment() string {
	return format("the in-article template must not contain <p> or <h2> tags")
}

// ForUnterminatedBlock returns hints for strict builds rejecting a post.
func ForUnterminatedBlock() string {
	return formatHints([]string{"close the ``` fence or end the table with a blank line", "or build without --strict"})
}

// filepathSlash normalizes Windows separators for substring checks.
func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
