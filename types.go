package md2blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2blog/internal/pipeline"
)

// Default metadata values used when front matter omits a field.
const (
	DefaultTitle    = "Blog Post"
	DefaultCategory = "Technology"
	DefaultSlug     = "blog-post"

	// Auto asks the converter to compute a description or read time.
	Auto = "auto"
)

// maxSlugLength bounds slugs so output file names stay portable.
const maxSlugLength = 200

// Input contains conversion parameters.
type Input struct {
	Source   string // Markdown with optional front matter (required)
	Filename string // Source file name, used for the slug fallback (optional)
}

// Metadata holds the resolved metadata of a post.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	Date        time.Time
	DisplayDate string
	ReadTime    string
	Category    string
	Slug        string
}

// Result holds the output of one conversion.
type Result struct {
	Slug     string
	Metadata Metadata
	Body     string // rendered body with ads, as embedded in the page
	HTML     []byte // complete page

	// Diagnostics lists malformed blocks that were closed at end of input.
	Diagnostics []Diagnostic
	// UnknownKeys lists front matter keys the converter does not use.
	UnknownKeys []string
}

// Diagnostic records a construct that was flushed in closed form at end of input.
type Diagnostic = pipeline.Diagnostic

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind = pipeline.DiagnosticKind

// Diagnostic kinds.
const (
	UnterminatedCode  = pipeline.UnterminatedCode
	UnterminatedTable = pipeline.UnterminatedTable
)

// AdPolicy decides where in-article ads go. See DefaultAdPolicy.
type AdPolicy = pipeline.AdPolicy

// DefaultAdPolicy places ads after the 2nd and 4th section heading, or after
// every 8th paragraph of posts with more than 15 paragraphs and fewer than 3
// section headings.
func DefaultAdPolicy() AdPolicy {
	return pipeline.DefaultAdPolicy()
}

// Site describes the blog a post belongs to.
type Site struct {
	Name       string
	Author     string
	BaseURL    string // canonical URLs are BaseURL + "/" + slug + ".html"
	Tagline    string
	Bio        string // author bio shown under the article (optional)
	Stylesheet string // stylesheet href linked from every page (optional)
	BackLink   string // "back" link target (optional)
	DateFormat string // display date format or preset (default "MMMM DD, YYYY")
}

// Defaults holds fallback metadata values. Description and ReadTime accept Auto.
type Defaults struct {
	Title       string
	Description string
	Category    string
	ReadTime    string
}

// DefaultDefaults returns the built-in fallback metadata.
func DefaultDefaults() Defaults {
	return Defaults{
		Title:       DefaultTitle,
		Description: Auto,
		Category:    DefaultCategory,
		ReadTime:    Auto,
	}
}

// Ads configures the ad units of a page.
type Ads struct {
	Enabled       bool
	Client        string // ad client ID, e.g. "ca-pub-123"
	TopSlot       string // slot shown above the article (optional)
	InArticleSlot string // slot spliced into the body
}

// Validate checks that enabled ads carry the identifiers they need.
// Returns nil if ads are disabled.
func (a Ads) Validate() error {
	if !a.Enabled {
		return nil
	}
	if strings.TrimSpace(a.Client) == "" {
		return fmt.Errorf("%w: ads enabled without client", ErrInvalidAds)
	}
	return nil
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	site           Site
	defaults       Defaults
	ads            Ads
	adPolicy       AdPolicy
	adFragment     string
	assetPath      string
	style          string
	highlightStyle string
	strict         bool
	now            func() time.Time
}

// WithSite sets the site information rendered on every page.
func WithSite(s Site) Option {
	return func(c *Converter) {
		c.cfg.site = s
	}
}

// WithDefaults sets fallback metadata. Empty fields keep the built-in default.
func WithDefaults(d Defaults) Option {
	return func(c *Converter) {
		base := DefaultDefaults()
		if d.Title != "" {
			base.Title = d.Title
		}
		if d.Description != "" {
			base.Description = d.Description
		}
		if d.Category != "" {
			base.Category = d.Category
		}
		if d.ReadTime != "" {
			base.ReadTime = d.ReadTime
		}
		c.cfg.defaults = base
	}
}

// WithAds enables page-level and in-article ads.
func WithAds(a Ads) Option {
	return func(c *Converter) {
		c.cfg.ads = a
	}
}

// WithAdPolicy overrides where in-article ads are placed.
func WithAdPolicy(p AdPolicy) Option {
	return func(c *Converter) {
		p.AfterHeadings = append([]int(nil), p.AfterHeadings...)
		c.cfg.adPolicy = p
	}
}

// WithAdFragment sets the in-article ad markup directly instead of rendering
// the in-article template.
func WithAdFragment(fragment string) Option {
	return func(c *Converter) {
		c.cfg.adFragment = fragment
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(l AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = l
	}
}

// WithStyle loads a stylesheet by name so it can be published next to the
// pages. See Converter.Stylesheet.
func WithStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// HighlightStyles returns the style names accepted by WithHighlightStyle.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// WithHighlightStyle enables syntax highlighting of fenced code that carries a
// language tag, using the named chroma style.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}

// WithStrict rejects posts with unterminated code blocks or tables.
func WithStrict(strict bool) Option {
	return func(c *Converter) {
		c.cfg.strict = strict
	}
}

// WithNow sets the clock used for "auto" dates and the footer year.
// Panics if now is nil (programmer error).
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("md2blog: WithNow clock must not be nil")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}
