package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"pkt.systems/pslog"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/fileutil"
	"github.com/alnah/go-md2blog/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: pages are published
)

// Sentinel errors for the build command.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrOutputDir          = errors.New("cannot create output directory")
	ErrWriteStylesheet    = errors.New("failed to write stylesheet")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrBuildFailed        = errors.New("build failed")
)

// runBuildCmd parses build flags, runs the build and returns an exit code.
func runBuildCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, err, "")
	}

	log := env.logger(flags.common.verbose, flags.common.quiet)
	ctx = pslog.ContextWithLogger(ctx, log)

	err = runBuild(ctx, positional, flags, env)
	return reportError(env, err, flags.common.config)
}

// runBuild orchestrates the build: config, discovery, conversion and output.
func runBuild(ctx context.Context, positional []string, flags *buildFlags, env *Environment) error {
	log := pslog.Ctx(ctx)

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env, log)
	warnUnknownEnvVars(env.Environ(), log)

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := loadConfig(configName, log)
	if err != nil {
		return err
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	conv, err := newConverter(cfg, env.Now)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	posts, skipped, err := discoverPosts(inputPath, cfg.Input.Skip)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return &hintedError{
			err:  fmt.Errorf("%w in %s", ErrNoPosts, inputPath),
			hint: hints.ForNoPosts(skipped),
		}
	}
	for _, s := range skipped {
		log.Debug("skipping post", "input", s)
	}

	outDir := cfg.Output.DefaultDir
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return &hintedError{
			err:  fmt.Errorf("%w: %v", ErrOutputDir, err),
			hint: hints.ForOutputDirectory(),
		}
	}

	if cfg.Output.WriteStylesheet {
		if err := writeStylesheet(outDir, cfg.Site.Stylesheet, conv.Stylesheet()); err != nil {
			return err
		}
	}

	workers := md2blog.ResolveWorkers(cfg.Build.Workers, len(posts))
	log.Debug("building", "posts", len(posts), "workers", workers, "output", outDir)

	results := buildBatch(ctx, conv, posts, workers)
	publishResults(ctx, results, outDir)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)

	if cfg.Output.Manifest != "" {
		if err := writeManifest(cfg.Output.Manifest, buildManifest(results)); err != nil {
			return err
		}
		log.Debug("wrote manifest", "path", cfg.Output.Manifest)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d post(s) failed", ErrBuildFailed, failed, len(results))
	}
	return nil
}

// loadConfig loads a named config. Without a name, the default config name
// is tried and built-in defaults are used when it does not exist.
func loadConfig(name string, log pslog.Logger) (*config.Config, error) {
	if name != "" {
		return config.LoadConfig(name)
	}

	cfg, err := config.LoadConfig(config.DefaultName)
	if errors.Is(err, config.ErrConfigNotFound) {
		log.Debug("no config file, using defaults", "searched", strings.Join(config.SearchPaths(config.DefaultName), ", "))
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

// mergeFlags applies CLI flags on top of the config. Only flags that were
// given override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.site.name != "" {
		cfg.Site.Name = flags.site.name
	}
	if flags.site.author != "" {
		cfg.Site.Author = flags.site.author
	}
	if flags.site.baseURL != "" {
		cfg.Site.BaseURL = flags.site.baseURL
	}
	if flags.site.dateFormat != "" {
		cfg.Site.DateFormat = flags.site.dateFormat
	}

	if flags.output.dir != "" {
		cfg.Output.DefaultDir = flags.output.dir
	}
	if flags.output.manifest != "" {
		cfg.Output.Manifest = flags.output.manifest
	}
	if flags.output.writeStylesheet {
		cfg.Output.WriteStylesheet = true
	}

	if flags.render.highlight != "" {
		cfg.Highlight.Style = flags.render.highlight
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
	if flags.render.noAds {
		disabled := false
		cfg.Ads.Enabled = &disabled
	}
	if flags.render.strict {
		cfg.Build.Strict = true
	}
	if flags.workers > 0 {
		cfg.Build.Workers = flags.workers
	}
}

// newConverter builds a converter from a validated config.
func newConverter(cfg *config.Config, now func() time.Time) (*md2blog.Converter, error) {
	opts := []md2blog.Option{
		md2blog.WithNow(now),
		md2blog.WithSite(md2blog.Site{
			Name:       cfg.Site.Name,
			Author:     cfg.Site.Author,
			BaseURL:    cfg.Site.BaseURL,
			Tagline:    cfg.Site.Tagline,
			Bio:        cfg.Site.Bio,
			Stylesheet: cfg.Site.Stylesheet,
			BackLink:   cfg.Site.BackLink,
			DateFormat: cfg.Site.DateFormat,
		}),
		md2blog.WithDefaults(md2blog.Defaults{
			Title:       cfg.Defaults.Title,
			Description: cfg.Defaults.Description,
			Category:    cfg.Defaults.Category,
			ReadTime:    cfg.Defaults.ReadTime,
		}),
		md2blog.WithStrict(cfg.Build.Strict),
	}

	if cfg.Ads.On() {
		opts = append(opts,
			md2blog.WithAds(md2blog.Ads{
				Enabled:       true,
				Client:        cfg.Ads.Client,
				TopSlot:       cfg.Ads.TopSlot,
				InArticleSlot: cfg.Ads.InArticleSlot,
			}),
			md2blog.WithAdPolicy(cfg.Ads.Policy()),
		)
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2blog.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Highlight.Style != "" {
		opts = append(opts, md2blog.WithHighlightStyle(cfg.Highlight.Style))
	}
	if cfg.Output.WriteStylesheet {
		opts = append(opts, md2blog.WithStyle(cfg.Assets.Style))
	}

	return md2blog.NewConverter(opts...)
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: expected at most one input, got %d", ErrUsage, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.DefaultDir != "":
		return cfg.Input.DefaultDir, nil
	default:
		return "", ErrNoInput
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2blog.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2blog.MaxWorkers)
	}
	return nil
}

// writeStylesheet publishes the stylesheet the pages link to.
func writeStylesheet(outDir, name, css string) error {
	path := filepath.Join(outDir, name)
	if err := fileutil.WriteFileAtomic(path, []byte(css), filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteStylesheet, path, err)
	}
	return nil
}

// hintedError carries an actionable hint printed after the error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// reportError prints err with a hint when one applies and returns its exit code.
func reportError(env *Environment, err error, configName string) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName))
	return exitCodeFor(err)
}

// hintFor returns the hint for an error, or "".
func hintFor(err error, configName string) string {
	var he *hintedError
	if errors.As(err, &he) {
		return he.hint
	}

	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		name := configName
		if name == "" || fileutil.IsFilePath(name) {
			name = config.DefaultName
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	case errors.Is(err, md2blog.ErrUnknownHighlighter):
		return hints.ForHighlightStyle(md2blog.HighlightStyles())
	case errors.Is(err, md2blog.ErrInvalidAdFragment):
		return hints.ForAdFragment()
	default:
		return ""
	}
}
