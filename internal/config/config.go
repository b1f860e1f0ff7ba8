// Package config loads and validates the site configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/pipeline"
	"github.com/alnah/go-md2blog/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name searched when none is given.
const DefaultName = "md2blog"

// appDirName is the directory under the user config dir holding named configs.
const appDirName = "go-md2blog"

// Field length limits.
const (
	MaxNameLength     = 100
	MaxURLLength      = 2048
	MaxTextLength     = 500
	MaxPathLength     = 4096
	MaxAdIDLength     = 50 // "ca-pub-0000000000000000", slot ids
	MaxCategoryLength = 50
	MaxReadTimeLength = 30
	MaxStyleLength    = 50
	MaxSkipEntries    = 100
	MaxWorkers        = 32
)

// Config holds all configuration for a site build.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Ads       AdsConfig       `yaml:"ads"`
	Highlight HighlightConfig `yaml:"highlight"`
	Assets    AssetsConfig    `yaml:"assets"`
	Build     BuildConfig     `yaml:"build"`
}

// SiteConfig describes the site every post belongs to.
type SiteConfig struct {
	Name       string `yaml:"name"`
	Author     string `yaml:"author"`
	BaseURL    string `yaml:"baseURL"` // canonical URL prefix of the posts
	Tagline    string `yaml:"tagline"`
	Bio        string `yaml:"bio"`
	Stylesheet string `yaml:"stylesheet"` // href of the stylesheet link
	BackLink   string `yaml:"backLink"`
	DateFormat string `yaml:"dateFormat"` // tokens or preset, see dateutil
}

// InputConfig defines where posts are read from.
type InputConfig struct {
	DefaultDir string   `yaml:"defaultDir"`
	Skip       []string `yaml:"skip"` // file names never built (e.g. template.md)
}

// OutputConfig defines where pages are written.
type OutputConfig struct {
	DefaultDir      string `yaml:"defaultDir"`
	Manifest        string `yaml:"manifest"`        // JSON manifest path, empty = none
	WriteStylesheet bool   `yaml:"writeStylesheet"` // copy assets.style next to the pages
}

// DefaultsConfig holds values used when a post's header omits them.
type DefaultsConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"` // "auto" = excerpt of the first paragraph
	Category    string `yaml:"category"`
	ReadTime    string `yaml:"readTime"` // "auto" = estimated from word count
}

// AdsConfig defines ad units and placement.
type AdsConfig struct {
	Enabled           *bool  `yaml:"enabled"` // nil = enabled
	Client            string `yaml:"client"`
	TopSlot           string `yaml:"topSlot"`
	InArticleSlot     string `yaml:"inArticleSlot"`
	AfterHeadings     []int  `yaml:"afterHeadings"`
	MinParagraphs     *int   `yaml:"minParagraphs"` // nil = default; 0 is kept
	MaxHeadings       *int   `yaml:"maxHeadings"`   // nil = default; 0 disables the paragraph pass
	ParagraphInterval int    `yaml:"paragraphInterval"`
}

// On reports whether ads are enabled. Ads are on unless explicitly disabled.
func (a AdsConfig) On() bool {
	return a.Enabled == nil || *a.Enabled
}

// Policy returns the placement policy described by the config.
// Unset thresholds take their DefaultAdPolicy value.
func (a AdsConfig) Policy() pipeline.AdPolicy {
	def := pipeline.DefaultAdPolicy()
	return pipeline.AdPolicy{
		AfterHeadings:     append([]int(nil), a.AfterHeadings...),
		MinParagraphs:     intOr(a.MinParagraphs, def.MinParagraphs),
		MaxHeadings:       intOr(a.MaxHeadings, def.MaxHeadings),
		ParagraphInterval: a.ParagraphInterval,
	}
}

// HighlightConfig defines code highlighting. An empty style disables it.
type HighlightConfig struct {
	Style string `yaml:"style"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
	Style    string `yaml:"style"`    // stylesheet asset written when output.writeStylesheet
}

// BuildConfig defines batch behavior.
type BuildConfig struct {
	Strict  bool `yaml:"strict"`  // reject posts with unterminated code blocks or tables
	Workers int  `yaml:"workers"` // 0 = auto
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	policy := pipeline.DefaultAdPolicy()
	return &Config{
		Site: SiteConfig{
			Name:       "Blog",
			Stylesheet: "blog_styling.css",
			BackLink:   "../index.html#blog",
			DateFormat: dateutil.DefaultDisplayFormat,
		},
		Input: InputConfig{
			DefaultDir: filepath.Join("blog", "markdown"),
			Skip:       []string{"template.md"},
		},
		Output: OutputConfig{
			DefaultDir: "blog",
		},
		Defaults: DefaultsConfig{
			Title:       "Blog Post",
			Description: "auto",
			Category:    "Technology",
			ReadTime:    "auto",
		},
		Ads: AdsConfig{
			Enabled:           boolPtr(true),
			Client:            "ca-pub-6705222517983610",
			TopSlot:           "3215730742",
			InArticleSlot:     "1879717900",
			AfterHeadings:     policy.AfterHeadings,
			MinParagraphs:     intPtr(policy.MinParagraphs),
			MaxHeadings:       intPtr(policy.MaxHeadings),
			ParagraphInterval: policy.ParagraphInterval,
		},
		Assets: AssetsConfig{
			Style: "blog",
		},
	}
}

// ApplyDefaults fills every zero-valued field with its DefaultConfig value.
// A nil list takes the default; an explicitly empty list is kept.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()

	setString(&c.Site.Name, def.Site.Name)
	setString(&c.Site.Stylesheet, def.Site.Stylesheet)
	setString(&c.Site.BackLink, def.Site.BackLink)
	setString(&c.Site.DateFormat, def.Site.DateFormat)

	setString(&c.Input.DefaultDir, def.Input.DefaultDir)
	if c.Input.Skip == nil {
		c.Input.Skip = def.Input.Skip
	}
	setString(&c.Output.DefaultDir, def.Output.DefaultDir)

	setString(&c.Defaults.Title, def.Defaults.Title)
	setString(&c.Defaults.Description, def.Defaults.Description)
	setString(&c.Defaults.Category, def.Defaults.Category)
	setString(&c.Defaults.ReadTime, def.Defaults.ReadTime)

	if c.Ads.Enabled == nil {
		c.Ads.Enabled = def.Ads.Enabled
	}
	setString(&c.Ads.Client, def.Ads.Client)
	setString(&c.Ads.TopSlot, def.Ads.TopSlot)
	setString(&c.Ads.InArticleSlot, def.Ads.InArticleSlot)
	if c.Ads.AfterHeadings == nil {
		c.Ads.AfterHeadings = def.Ads.AfterHeadings
	}
	if c.Ads.MinParagraphs == nil {
		c.Ads.MinParagraphs = def.Ads.MinParagraphs
	}
	if c.Ads.MaxHeadings == nil {
		c.Ads.MaxHeadings = def.Ads.MaxHeadings
	}
	setInt(&c.Ads.ParagraphInterval, def.Ads.ParagraphInterval)

	setString(&c.Assets.Style, def.Assets.Style)
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(n int) *int {
	return &n
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.name", c.Site.Name, MaxNameLength},
		{"site.author", c.Site.Author, MaxNameLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
		{"site.tagline", c.Site.Tagline, MaxTextLength},
		{"site.bio", c.Site.Bio, MaxTextLength},
		{"site.stylesheet", c.Site.Stylesheet, MaxURLLength},
		{"site.backLink", c.Site.BackLink, MaxURLLength},
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.manifest", c.Output.Manifest, MaxPathLength},
		{"defaults.title", c.Defaults.Title, MaxNameLength},
		{"defaults.description", c.Defaults.Description, MaxTextLength},
		{"defaults.category", c.Defaults.Category, MaxCategoryLength},
		{"defaults.readTime", c.Defaults.ReadTime, MaxReadTimeLength},
		{"ads.client", c.Ads.Client, MaxAdIDLength},
		{"ads.topSlot", c.Ads.TopSlot, MaxAdIDLength},
		{"ads.inArticleSlot", c.Ads.InArticleSlot, MaxAdIDLength},
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxStyleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Site.BaseURL != "" && !fileutil.IsURL(c.Site.BaseURL) {
		return fmt.Errorf("%w: site.baseURL must start with http:// or https://, got %q", ErrInvalidValue, c.Site.BaseURL)
	}
	if c.Site.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(c.Site.DateFormat); err != nil {
			return fmt.Errorf("site.dateFormat: %w", err)
		}
	}

	if len(c.Input.Skip) > MaxSkipEntries {
		return fmt.Errorf("%w: input.skip has %d entries, max %d", ErrInvalidValue, len(c.Input.Skip), MaxSkipEntries)
	}

	if c.Ads.On() {
		if c.Ads.Client == "" {
			return fmt.Errorf("%w: ads.client required when ads are enabled", ErrInvalidValue)
		}
		if c.Ads.InArticleSlot == "" {
			return fmt.Errorf("%w: ads.inArticleSlot required when ads are enabled", ErrInvalidValue)
		}
		if err := c.Ads.Policy().Validate(); err != nil {
			return fmt.Errorf("%w: ads.%v", ErrInvalidValue, err)
		}
	}

	if c.Output.WriteStylesheet && fileutil.IsFilePath(c.Site.Stylesheet) {
		return fmt.Errorf("%w: site.stylesheet must be a file name when output.writeStylesheet is set, got %q",
			ErrInvalidValue, c.Site.Stylesheet)
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched in standard locations (see SearchPaths).
// Values absent from the file take their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// ./name.yaml, ./name.yml, then the same names in the user config directory
// under go-md2blog/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
