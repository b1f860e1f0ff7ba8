package md2blog

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/frontmatter"
	"github.com/alnah/go-md2blog/internal/pipeline"
)

// Front matter keys read by the converter.
const (
	keyTitle       = "title"
	keyDescription = "description"
	keyKeywords    = "keywords"
	keyDate        = "date"
	keyReadTime    = "readTime"
	keyCategory    = "category"
	keySlug        = "slug"
)

var knownKeys = []string{keyTitle, keyDescription, keyKeywords, keyDate, keyReadTime, keyCategory, keySlug}

// resolveMetadata fills post metadata from front matter and converter defaults.
// markdown is the post body source; plain is the rendered body before ads.
func (c *Converter) resolveMetadata(fields frontmatter.Fields, filename, markdown, plain string) (Metadata, error) {
	d := c.cfg.defaults

	date, err := dateutil.ResolvePostDate(fields.StringOr(keyDate, ""), c.cfg.now())
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	display, err := dateutil.FormatDisplayDate(date, c.displayFormat())
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}

	slug, err := resolveSlug(fields.StringOr(keySlug, ""), filename)
	if err != nil {
		return Metadata{}, err
	}

	keywords := fields.List(keyKeywords)
	if keywords == nil {
		keywords = []string{}
	}

	return Metadata{
		Title:       fields.StringOr(keyTitle, d.Title),
		Description: c.resolveDescription(fields.StringOr(keyDescription, d.Description), plain),
		Keywords:    keywords,
		Date:        date,
		DisplayDate: display,
		ReadTime:    c.resolveReadTime(fields.StringOr(keyReadTime, d.ReadTime), markdown),
		Category:    fields.StringOr(keyCategory, d.Category),
		Slug:        slug,
	}, nil
}

// resolveDescription expands Auto into an excerpt of the first paragraph, or a
// byline when the body has no paragraph text.
func (c *Converter) resolveDescription(value, plain string) string {
	if !strings.EqualFold(value, Auto) {
		return value
	}
	if excerpt := pipeline.Excerpt(plain, pipeline.DefaultExcerptLength); excerpt != "" {
		return excerpt
	}
	if c.cfg.site.Author != "" {
		return "A blog post by " + c.cfg.site.Author
	}
	return "A blog post"
}

// resolveReadTime expands Auto into an estimate from the body word count.
func (c *Converter) resolveReadTime(value, markdown string) string {
	if !strings.EqualFold(value, Auto) {
		return value
	}
	return pipeline.ReadTime(c.words.Count(markdown))
}

// resolveSlug picks the front matter slug, else the file stem, else DefaultSlug.
func resolveSlug(slug, filename string) (string, error) {
	if slug == "" && filename != "" {
		base := filepath.Base(filename)
		slug = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if slug == "" || slug == "." {
		slug = DefaultSlug
	}
	if err := ValidateSlug(slug); err != nil {
		return "", err
	}
	return slug, nil
}

// ValidateSlug checks that a slug can be used as an output file name.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSlug)
	}
	if len(slug) > maxSlugLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidSlug, maxSlugLength)
	}
	if slug == "." || slug == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	if strings.ContainsAny(slug, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSlug, slug)
	}
	for _, r := range slug {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains control characters", ErrInvalidSlug, slug)
		}
	}
	return nil
}
