package md2blog

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput        = errors.New("post content cannot be empty")
	ErrFrontMatter       = errors.New("invalid front matter")
	ErrInvalidDate       = errors.New("invalid post date")
	ErrInvalidSlug       = errors.New("invalid slug")
	ErrUnterminatedBlock = errors.New("unterminated block")
	ErrPageRender        = errors.New("page rendering failed")

	// Converter option errors.
	ErrInvalidAds         = errors.New("invalid ads settings")
	ErrInvalidAdFragment  = errors.New("invalid ad fragment")
	ErrInvalidAdPolicy    = errors.New("invalid ad policy")
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrUnknownHighlighter = errors.New("unknown highlight style")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
