package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for post discovery.
var (
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrNoPosts          = errors.New("no posts found")
)

// discoverPosts finds the posts to build under inputPath, in lexical order.
// Files whose base name matches a skip pattern are returned in skipped.
// A single file given explicitly is always built.
func discoverPosts(inputPath string, skip []string) (posts, skipped []string, err error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, nil, err
		}
		return []string{inputPath}, nil, nil
	}

	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}
		if isSkipped(d.Name(), skip) {
			skipped = append(skipped, path)
			return nil
		}
		posts = append(posts, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return posts, skipped, nil
}

// isSkipped reports whether name matches a skip entry. Entries are glob
// patterns; a malformed pattern only matches itself.
func isSkipped(name string, skip []string) bool {
	for _, pattern := range skip {
		matched, err := filepath.Match(pattern, name)
		if err != nil {
			matched = pattern == name
		}
		if matched {
			return true
		}
	}
	return false
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !isMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}
