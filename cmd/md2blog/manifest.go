package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/alnah/go-md2blog/internal/dateutil"
	"github.com/alnah/go-md2blog/internal/fileutil"
)

// ErrWriteManifest indicates the manifest could not be written.
var ErrWriteManifest = errors.New("failed to write manifest")

// manifestEntry describes one built post for index pages.
type manifestEntry struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	File        string   `json:"file"`
}

// buildManifest lists published posts, newest first. Posts sharing a slug
// keep only the last one, matching the page left on disk. File is the path the
// page was written to, with forward slashes.
func buildManifest(results []BuildResult) []manifestEntry {
	bySlug := make(map[string]manifestEntry, len(results))
	for _, r := range results {
		if r.Err != nil || r.Result == nil || r.OutputPath == "" {
			continue
		}
		m := r.Result.Metadata
		bySlug[m.Slug] = manifestEntry{
			Slug:        m.Slug,
			Title:       m.Title,
			Description: m.Description,
			Date:        m.Date.Format(dateutil.ISOLayout),
			ReadTime:    m.ReadTime,
			Category:    m.Category,
			Keywords:    m.Keywords,
			File:        filepath.ToSlash(r.OutputPath),
		}
	}

	entries := make([]manifestEntry, 0, len(bySlug))
	for _, e := range bySlug {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b manifestEntry) int {
		if c := cmp.Compare(b.Date, a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Slug, b.Slug)
	})
	return entries
}

// writeManifest writes entries as indented JSON.
func writeManifest(path string, entries []manifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteManifest, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteManifest, err)
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteManifest, path, err)
	}
	return nil
}
