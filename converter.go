package md2blog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/alnah/go-md2blog/internal/assets"
	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/frontmatter"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Highlighter = (*pipeline.ChromaHighlighter)(nil)
	_ assets.AssetLoader   = (*assets.AssetResolver)(nil)
)

// Converter orchestrates the post-to-page conversion pipeline.
// Create with NewConverter() and use Convert() for each post.
// A Converter is immutable after construction and safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	highlighter       pipeline.Highlighter
	injector          *pipeline.AdInjector // nil when ads are disabled
	page              *pipeline.PageRenderer
	words             *pipeline.WordCounter
	stylesheet        string
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithSite, WithAds, WithAssetPath).
// Returns error if asset loading, template parsing or option validation fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			defaults: DefaultDefaults(),
			adPolicy: DefaultAdPolicy(),
			now:      time.Now,
		},
		assetLoader: assets.NewEmbeddedLoader(),
		words:       pipeline.NewWordCounter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &internalLoader{pub: c.publicAssetLoader}
	}

	if _, err := dateutil.ParseDateFormat(c.displayFormat()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}

	if err := c.initHighlighter(); err != nil {
		return nil, err
	}
	if err := c.initAds(); err != nil {
		return nil, err
	}
	if err := c.initPage(); err != nil {
		return nil, err
	}

	if c.cfg.style != "" {
		css, err := c.assetLoader.LoadStyle(c.cfg.style)
		if err != nil {
			return nil, fmt.Errorf("loading style %q: %w", c.cfg.style, convertAssetError(err))
		}
		c.stylesheet = css
	}

	return c, nil
}

func (c *Converter) initHighlighter() error {
	if c.cfg.highlightStyle == "" {
		return nil
	}
	h, err := pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownHighlighter, err)
	}
	c.highlighter = h
	return nil
}

// initAds builds the in-article injector. The fragment is rendered once from
// the in-article template unless set directly with WithAdFragment.
func (c *Converter) initAds() error {
	ads := c.cfg.ads
	if err := ads.Validate(); err != nil {
		return err
	}
	if !ads.Enabled {
		return nil
	}

	fragment := c.cfg.adFragment
	if fragment == "" {
		if ads.InArticleSlot == "" {
			return nil
		}
		tmpl, err := c.assetLoader.LoadTemplate(InArticleTemplate)
		if err != nil {
			return fmt.Errorf("loading in-article template: %w", convertAssetError(err))
		}
		fragment, err = pipeline.RenderAdFragment(tmpl, toAdsData(ads))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAdFragment, err)
		}
	}

	injector, err := pipeline.NewAdInjector(fragment, c.cfg.adPolicy)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidAdFragment) {
			return fmt.Errorf("%w: %v", ErrInvalidAdFragment, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidAdPolicy, err)
	}
	c.injector = injector
	return nil
}

func (c *Converter) initPage() error {
	tmpl, err := c.assetLoader.LoadTemplate(PostTemplate)
	if err != nil {
		return fmt.Errorf("loading post template: %w", convertAssetError(err))
	}
	page, err := pipeline.NewPageRenderer(tmpl)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	c.page = page
	return nil
}

// Stylesheet returns the CSS loaded with WithStyle, or "" when none was requested.
func (c *Converter) Stylesheet() string {
	return c.stylesheet
}

// Convert runs the full pipeline on one post and returns the rendered page.
// The context is checked between stages for cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	content := pipeline.NormalizeLineEndings(input.Source)
	header, markdown, _ := frontmatter.Split(content)
	fields, err := frontmatter.Parse(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	parsed := pipeline.Parse(markdown, pipeline.ParseOptions{Highlighter: c.highlighter})
	if c.cfg.strict && len(parsed.Diagnostics) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnterminatedBlock, parsed.Diagnostics[0])
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	plain := parsed.HTML()
	body := plain
	if c.injector != nil {
		body = c.injector.Inject(plain)
	}

	meta, err := c.resolveMetadata(fields, input.Filename, markdown, plain)
	if err != nil {
		return nil, err
	}

	page, err := c.page.Render(ctx, &pipeline.PageData{
		Site: c.siteData(),
		Post: toPostData(meta),
		Ads:  toAdsData(c.cfg.ads),
		Body: template.HTML(body), // #nosec G203 -- post bodies are trusted author content
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	return &Result{
		Slug:        meta.Slug,
		Metadata:    meta,
		Body:        body,
		HTML:        page,
		Diagnostics: parsed.Diagnostics,
		UnknownKeys: fields.Unknown(knownKeys...),
	}, nil
}

// Render converts a post body (no front matter) to HTML with the default ad
// fragment and placement policy. It performs no I/O.
func Render(body string) string {
	return pipeline.Render(body)
}

// validateInput checks that required fields are present.
func validateInput(input Input) error {
	if input.Source == "" {
		return ErrEmptyInput
	}
	return nil
}

func (c *Converter) displayFormat() string {
	if c.cfg.site.DateFormat == "" {
		return dateutil.DefaultDisplayFormat
	}
	return c.cfg.site.DateFormat
}

func (c *Converter) siteData() pipeline.SiteData {
	s := c.cfg.site
	return pipeline.SiteData{
		Name:       s.Name,
		Author:     s.Author,
		BaseURL:    s.BaseURL,
		Tagline:    s.Tagline,
		Bio:        s.Bio,
		Stylesheet: s.Stylesheet,
		BackLink:   s.BackLink,
		Year:       c.cfg.now().Year(),
	}
}

// toPostData converts public Metadata to internal pipeline.PostData.
func toPostData(m Metadata) pipeline.PostData {
	return pipeline.PostData{
		Title:       m.Title,
		Description: m.Description,
		Keywords:    m.Keywords,
		Date:        m.Date.Format(dateutil.ISOLayout),
		DisplayDate: m.DisplayDate,
		ReadTime:    m.ReadTime,
		Category:    m.Category,
		Slug:        m.Slug,
	}
}

// toAdsData converts public Ads to internal pipeline.AdsData.
func toAdsData(a Ads) pipeline.AdsData {
	return pipeline.AdsData{
		Enabled:       a.Enabled,
		Client:        a.Client,
		TopSlot:       a.TopSlot,
		InArticleSlot: a.InArticleSlot,
	}
}
