package assets

// Built-in asset names.
const (
	PostTemplateName      = "post"
	InArticleTemplateName = "in-article"
	DefaultStyleName      = "blog"
)

// AssetLoader defines the contract for loading stylesheets and HTML templates.
type AssetLoader interface {
	// LoadStyle loads a CSS stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
