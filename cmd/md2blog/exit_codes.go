package main

import (
	"errors"
	"os"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/fileutil"
)

// Exit codes for md2blog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All posts built
	ExitGeneral = 1 // Build failures or unexpected errors
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrEmptyPath) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoPosts) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrWriteStylesheet) ||
		errors.Is(err, ErrWriteManifest) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2blog.ErrInvalidAds) ||
		errors.Is(err, md2blog.ErrInvalidAdFragment) ||
		errors.Is(err, md2blog.ErrInvalidAdPolicy) ||
		errors.Is(err, md2blog.ErrInvalidDateFormat) ||
		errors.Is(err, md2blog.ErrUnknownHighlighter) ||
		errors.Is(err, md2blog.ErrStyleNotFound) ||
		errors.Is(err, md2blog.ErrTemplateNotFound) ||
		errors.Is(err, md2blog.ErrInvalidAssetPath) ||
		errors.Is(err, md2blog.ErrPageRender) {
		return ExitUsage
	}

	return ExitGeneral
}
