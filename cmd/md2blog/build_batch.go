package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pkt.systems/pslog"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/hints"
)

// Sentinel errors for per-post operations.
var (
	ErrReadPost  = errors.New("failed to read post")
	ErrWritePage = errors.New("failed to write page")
)

// PostConverter is the interface for the conversion service.
type PostConverter interface {
	Convert(ctx context.Context, input md2blog.Input) (*md2blog.Result, error)
}

// Compile-time interface implementation check.
var _ PostConverter = (*md2blog.Converter)(nil)

// BuildResult holds the outcome of a single post.
type BuildResult struct {
	InputPath  string
	OutputPath string
	Result     *md2blog.Result // nil on failure
	Err        error
	Duration   time.Duration
}

// buildBatch converts posts concurrently with a bounded number of workers.
// Results keep the order of files. Nothing is written here.
func buildBatch(ctx context.Context, conv PostConverter, files []string, workers int) []BuildResult {
	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{InputPath: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = buildPost(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildPost reads and converts a single post.
func buildPost(ctx context.Context, conv PostConverter, path string) BuildResult {
	start := time.Now()
	result := BuildResult{InputPath: path}

	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadPost, err)
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, md2blog.Input{Source: string(content), Filename: path})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	result.Result = res
	result.Duration = time.Since(start)
	return result
}

// publishResults writes successful pages to outDir in input order and logs
// what the converter recovered from. A later post with an already used slug
// overwrites the earlier page and is reported.
func publishResults(ctx context.Context, results []BuildResult, outDir string) {
	log := pslog.Ctx(ctx)
	seen := make(map[string]string, len(results))

	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		postLog := log.With("input", r.InputPath)

		for _, d := range r.Result.Diagnostics {
			postLog.Warn("closed malformed block at end of post", "kind", d.Kind.String(), "line", d.Line)
		}
		if len(r.Result.UnknownKeys) > 0 {
			postLog.Debug("unused front matter keys", "keys", strings.Join(r.Result.UnknownKeys, ","))
		}

		slug := r.Result.Slug
		if first, dup := seen[slug]; dup {
			postLog.Warn("duplicate slug, overwriting page", "slug", slug, "first", first)
		}
		seen[slug] = r.InputPath

		r.OutputPath = filepath.Join(outDir, slug+".html")
		if err := fileutil.WriteFileAtomic(r.OutputPath, r.Result.HTML, filePermissions); err != nil {
			r.Err = fmt.Errorf("%w: %v", ErrWritePage, err)
			r.Result = nil
		}
	}
}

// ResultSummary holds the count of succeeded and failed posts.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed posts.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results and returns the number of failures.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, postHint(r.Err))
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "Built %s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Built %s -> %s\n", r.InputPath, r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// postHint returns the hint for a per-post error, or "".
func postHint(err error) string {
	switch {
	case errors.Is(err, md2blog.ErrInvalidDate):
		return hints.ForInvalidDate()
	case errors.Is(err, md2blog.ErrUnterminatedBlock):
		return hints.ForUnterminatedBlock()
	default:
		return ""
	}
}
