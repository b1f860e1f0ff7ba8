package frontmatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2blog/internal/yamlutil"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		wantHeader string
		wantBody   string
		wantOK     bool
	}{
		{
			name:       "header and body",
			content:    "---\ntitle: Hello\n---\n# Body\n",
			wantHeader: "title: Hello",
			wantBody:   "# Body\n",
			wantOK:     true,
		},
		{
			name:     "no header",
			content:  "# Just a post\n",
			wantBody: "# Just a post\n",
		},
		{
			name:     "unclosed header is body",
			content:  "---\ntitle: Hello\n# Body",
			wantBody: "---\ntitle: Hello\n# Body",
		},
		{
			name:     "closing delimiter needs trailing newline",
			content:  "---\ntitle: Hello\n---",
			wantBody: "---\ntitle: Hello\n---",
		},
		{
			name:     "empty header",
			content:  "---\n---\nbody",
			wantBody: "body",
			wantOK:   true,
		},
		{
			name:       "first closing delimiter wins",
			content:    "---\na: 1\n---\ntext\n---\nmore",
			wantHeader: "a: 1",
			wantBody:   "text\n---\nmore",
			wantOK:     true,
		},
		{
			name:       "horizontal rules in body untouched",
			content:    "---\na: 1\n---\n\n---\n",
			wantHeader: "a: 1",
			wantBody:   "\n---\n",
			wantOK:     true,
		},
		{
			name:     "leading blank line means no header",
			content:  "\n---\na: 1\n---\nbody",
			wantBody: "\n---\na: 1\n---\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header, body, ok := Split(tt.content)
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		header       string
		wantStrings  map[string]string
		wantKeywords []string
	}{
		{
			name:   "yaml mapping",
			header: "title: \"Hello, World\"\ncategory: Go\nkeywords: [go, blog]",
			wantStrings: map[string]string{
				"title":    "Hello, World",
				"category": "Go",
			},
			wantKeywords: []string{"go", "blog"},
		},
		{
			name:   "yaml block list",
			header: "title: Lists\nkeywords:\n  - one\n  - two",
			wantStrings: map[string]string{
				"title": "Lists",
			},
			wantKeywords: []string{"one", "two"},
		},
		{
			name:   "colon in value kept",
			header: "title: Go: The Good Parts\nslug: go-good\nkeywords: ['a', \"b\"]",
			wantStrings: map[string]string{
				"title": "Go: The Good Parts",
				"slug":  "go-good",
			},
			wantKeywords: []string{"a", "b"},
		},
		{
			name:   "comma separated scalar keywords",
			header: "keywords: go, testing , ",
			wantKeywords: []string{
				"go", "testing",
			},
		},
		{
			name:   "numbers stringified",
			header: "slug: 2024\nreadTime: 7",
			wantStrings: map[string]string{
				"slug":     "2024",
				"readTime": "7",
			},
		},
		{
			name:   "values kept as written",
			header: "title: Fixing issue #42 in prod\nslug: 1.10\ndraft: yes\ndate: 2026-03-09",
			wantStrings: map[string]string{
				"title": "Fixing issue #42 in prod",
				"slug":  "1.10",
				"draft": "yes",
				"date":  "2026-03-09",
			},
		},
		{
			name:   "block list next to a colon in a value",
			header: "title: Go: The Good Parts\nkeywords:\n- go\n- style\nslug: go-good",
			wantStrings: map[string]string{
				"title": "Go: The Good Parts",
				"slug":  "go-good",
			},
			wantKeywords: []string{"go", "style"},
		},
		{
			name:        "empty header",
			header:      "   \n",
			wantStrings: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fields, err := Parse(tt.header)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			for key, want := range tt.wantStrings {
				got, ok := fields.String(key)
				if !ok || got != want {
					t.Errorf("String(%q) = %q, %v; want %q", key, got, ok, want)
				}
			}
			if tt.wantKeywords != nil {
				if diff := cmp.Diff(tt.wantKeywords, fields.List("keywords")); diff != "" {
					t.Errorf("List(keywords) mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	t.Parallel()

	fields, blocks := parseLines("title: 'Quoted'\nno colon here\n: empty key\nkeywords: []\nurl: https://example.com\ntags:\n  - a\n  - b\nsummary:")
	wantFields := Fields{
		"title":    "Quoted",
		"keywords": []any{},
		"url":      "https://example.com",
		"tags":     "",
		"summary":  "",
	}
	if diff := cmp.Diff(wantFields, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	wantBlocks := map[string]string{"tags": "tags:\n  - a\n  - b"}
	if diff := cmp.Diff(wantBlocks, blocks); diff != "" {
		t.Errorf("blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TooLarge(t *testing.T) {
	t.Parallel()

	header := "title: " + strings.Repeat("x", yamlutil.MaxInputSize)
	if _, err := Parse(header); !errors.Is(err, ErrTooLarge) {
		t.Errorf("error = %v, want ErrTooLarge", err)
	}
}

func TestFields_String(t *testing.T) {
	t.Parallel()

	f := Fields{
		"text":  "plain",
		"date":  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		"list":  []any{"a", 1},
		"flag":  true,
		"null":  nil,
		"blank": "  ",
	}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"text", "plain", true},
		{"date", "2026-01-02", true},
		{"list", "a, 1", true},
		{"flag", "true", true},
		{"null", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		got, ok := f.String(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("String(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}

	if got := f.StringOr("blank", "def"); got != "def" {
		t.Errorf("StringOr(blank) = %q, want def", got)
	}
	if got := f.StringOr("missing", "def"); got != "def" {
		t.Errorf("StringOr(missing) = %q, want def", got)
	}
	if got := f.StringOr("text", "def"); got != "plain" {
		t.Errorf("StringOr(text) = %q, want plain", got)
	}
}

func TestFields_List(t *testing.T) {
	t.Parallel()

	f := Fields{
		"seq":    []any{"a", " b ", "", nil},
		"inline": "[x, 'y']",
		"csv":    "one,two",
		"num":    3,
	}

	tests := []struct {
		key  string
		want []string
	}{
		{"seq", []string{"a", "b"}},
		{"inline", []string{"x", "y"}},
		{"csv", []string{"one", "two"}},
		{"num", []string{"3"}},
		{"missing", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, f.List(tt.key)); diff != "" {
			t.Errorf("List(%q) mismatch (-want +got):\n%s", tt.key, diff)
		}
	}
}

func TestFields_Unknown(t *testing.T) {
	t.Parallel()

	f := Fields{"title": "x", "tags": "y", "author": "z"}
	want := []string{"author", "tags"}
	if diff := cmp.Diff(want, f.Unknown("title", "slug")); diff != "" {
		t.Errorf("Unknown() mismatch (-want +got):\n%s", diff)
	}
}
