// Package frontmatter splits a post into its metadata header and body and
// decodes the header into fields.
//
// A header is the text between an opening "---" at the very start of the
// document and the first line consisting of "---". Each "key: value" line is
// read on its own and the value is kept as written. A key with no inline value
// followed by indented or "- " lines holds a block value, which is decoded as
// YAML.
package frontmatter

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-md2blog/internal/yamlutil"
)

// ErrTooLarge indicates a header above the YAML input limit.
var ErrTooLarge = errors.New("front matter too large")

const (
	delimiter      = "---"
	closeDelimiter = "\n---\n"
)

// Split separates the header from the body. The content must already use \n
// line endings. Without an opening delimiter, or without a closing one, ok is
// false and body is the whole content.
func Split(content string) (header, body string, ok bool) {
	if !strings.HasPrefix(content, delimiter) {
		return "", content, false
	}

	idx := strings.Index(content, closeDelimiter)
	if idx < 0 {
		return "", content, false
	}

	// "---\n---\n" closes on the opening line's newline: empty header.
	if idx >= len(delimiter)+1 {
		header = content[len(delimiter)+1 : idx]
	}
	return header, content[idx+len(closeDelimiter):], true
}

// Fields holds decoded header values by key.
type Fields map[string]any

// Parse decodes a header. Scalar values are never reinterpreted: "1.10" stays
// "1.10" and "#42" is not a comment. Only an oversized header is an error.
func Parse(header string) (Fields, error) {
	if strings.TrimSpace(header) == "" {
		return Fields{}, nil
	}
	if len(header) > yamlutil.MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(header), yamlutil.MaxInputSize)
	}

	fields, blocks := parseLines(header)
	for key, block := range blocks {
		if v, ok := decodeBlock(key, block); ok {
			fields[key] = v
		}
	}
	return fields, nil
}

// decodeBlock decodes one "key:" line and its continuation lines as YAML.
// A block that does not decode leaves the key with its empty inline value.
func decodeBlock(key, block string) (any, bool) {
	m, err := yamlutil.UnmarshalMapping([]byte(block))
	if err != nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok && v != nil
}

// parseLines reads "key: value" lines, splitting on the first colon and
// stripping surrounding quotes. "[a, b]" values become lists. Keys with an
// empty value followed by indented or "- " lines are returned in blocks with
// their raw text.
func parseLines(header string) (Fields, map[string]string) {
	fields := Fields{}
	blocks := map[string]string{}

	var (
		blockKey string
		block    strings.Builder
	)
	flush := func() {
		if blockKey != "" && strings.Contains(block.String(), "\n") {
			blocks[blockKey] = block.String()
		}
		blockKey = ""
		block.Reset()
	}

	for _, line := range strings.Split(strings.TrimSpace(header), "\n") {
		if blockKey != "" && isContinuation(line) {
			block.WriteString("\n" + line)
			continue
		}
		flush()

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value = unquote(strings.TrimSpace(value))
		if items, isList := parseInlineList(value); isList {
			fields[key] = items
			continue
		}
		fields[key] = value
		if value == "" {
			blockKey = key
			block.WriteString(key + ":")
		}
	}
	flush()
	return fields, blocks
}

func isContinuation(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "- ") || line == "-"
}

// parseInlineList splits "[a, 'b', "c"]" into its trimmed, unquoted items.
func parseInlineList(value string) ([]any, bool) {
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		return nil, false
	}
	inner := strings.TrimSpace(value[1 : len(value)-1])
	if inner == "" {
		return []any{}, true
	}

	parts := strings.Split(inner, ",")
	items := make([]any, 0, len(parts))
	for _, p := range parts {
		items = append(items, unquote(strings.TrimSpace(p)))
	}
	return items, true
}

func unquote(s string) string {
	return strings.Trim(s, `"'`)
}

// String returns the value of key as text. Lists are joined with ", ".
// ok is false when the key is absent or null.
func (f Fields) String(key string) (string, bool) {
	v, exists := f[key]
	if !exists || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case time.Time:
		return val.Format("2006-01-02"), true
	case []any:
		return strings.Join(toStrings(val), ", "), true
	default:
		return fmt.Sprint(val), true
	}
}

// StringOr returns String(key), or def when the key is absent or blank.
func (f Fields) StringOr(key, def string) string {
	if s, ok := f.String(key); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

// List returns the value of key as a list. A scalar string is split on commas.
// Empty items are dropped. Returns nil when the key is absent.
func (f Fields) List(key string) []string {
	v, exists := f[key]
	if !exists || v == nil {
		return nil
	}

	var items []string
	switch val := v.(type) {
	case []any:
		items = toStrings(val)
	case []string:
		items = slices.Clone(val)
	case string:
		if list, isList := parseInlineList(strings.TrimSpace(val)); isList {
			items = toStrings(list)
		} else {
			items = strings.Split(val, ",")
		}
	default:
		items = []string{fmt.Sprint(val)}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Unknown returns the keys not in known, sorted.
func (f Fields) Unknown(known ...string) []string {
	var out []string
	for k := range f {
		if !slices.Contains(known, k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func toStrings(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}
