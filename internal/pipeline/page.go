package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrPageRender = errors.New("page template rendering failed")
	ErrAdRender   = errors.New("ad template rendering failed")
)

// SiteData describes the site a post belongs to.
type SiteData struct {
	Name       string
	Author     string
	BaseURL    string // e.g. "https://example.com/blog", no trailing slash
	Tagline    string
	Bio        string
	Stylesheet string
	BackLink   string
	Year       int
}

// PostData holds the resolved metadata of one post.
type PostData struct {
	Title       string
	Description string
	Keywords    []string
	Date        string // YYYY-MM-DD
	DisplayDate string
	ReadTime    string
	Category    string
	Slug        string
}

// AdsData holds ad unit identifiers for the page-level ad slots.
type AdsData struct {
	Enabled       bool
	Client        string
	TopSlot       string
	InArticleSlot string
}

// PageData is the template input for a full post page.
type PageData struct {
	Site SiteData
	Post PostData
	Ads  AdsData
	Body template.HTML // trusted, already-rendered post body
}

// URL returns the canonical URL of the post.
func (d PageData) URL() string {
	return strings.TrimSuffix(d.Site.BaseURL, "/") + "/" + d.Post.Slug + ".html"
}

// templateFuncs are available to page templates.
var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// PageRenderer fills the page template with post data.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer creates a PageRenderer from template content.
// Returns error if the template cannot be parsed.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("post").Funcs(templateFuncs).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render executes the page template.
func (r *PageRenderer) Render(ctx context.Context, data *PageData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if data.Post.Keywords == nil {
		data.Post.Keywords = []string{}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}

// RenderAdFragment executes the in-article ad template once and validates the
// result, so every insertion splices identical markup.
func RenderAdFragment(tmplContent string, ads AdsData) (string, error) {
	tmpl, err := template.New("in-article").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing ad template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ads); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdRender, err)
	}

	fragment := strings.TrimSpace(buf.String())
	if err := ValidateAdFragment(fragment); err != nil {
		return "", err
	}
	return fragment, nil
}
