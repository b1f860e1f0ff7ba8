package main

import (
	"strconv"
	"strings"

	"pkt.systems/pslog"

	"github.com/alnah/go-md2blog/internal/config"
)

// envPrefix marks the environment variables read by md2blog.
const envPrefix = "MD2BLOG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2BLOG_CONFIG: config file name or path
	InputDir   string // MD2BLOG_INPUT_DIR: default input directory
	OutputDir  string // MD2BLOG_OUTPUT_DIR: default output directory
	SiteName   string // MD2BLOG_SITE_NAME: site name
	Author     string // MD2BLOG_AUTHOR: author name
	BaseURL    string // MD2BLOG_BASE_URL: base URL of the posts
	Highlight  string // MD2BLOG_HIGHLIGHT: chroma style
	AssetPath  string // MD2BLOG_ASSET_PATH: custom asset directory
	Workers    int    // MD2BLOG_WORKERS: parallel workers
	Strict     *bool  // MD2BLOG_STRICT: reject unterminated blocks
	Ads        *bool  // MD2BLOG_ADS: enable or disable ads
}

// knownEnvVars lists valid MD2BLOG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2BLOG_CONFIG":     true,
	"MD2BLOG_INPUT_DIR":  true,
	"MD2BLOG_OUTPUT_DIR": true,
	"MD2BLOG_SITE_NAME":  true,
	"MD2BLOG_AUTHOR":     true,
	"MD2BLOG_BASE_URL":   true,
	"MD2BLOG_HIGHLIGHT":  true,
	"MD2BLOG_ASSET_PATH": true,
	"MD2BLOG_WORKERS":    true,
	"MD2BLOG_STRICT":     true,
	"MD2BLOG_ADS":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are logged and ignored.
func loadEnvConfig(env *Environment, log pslog.Logger) *envConfig {
	get := func(name string) string {
		v, _ := env.LookupEnv(name)
		return strings.TrimSpace(v)
	}

	cfg := &envConfig{
		ConfigPath: get("MD2BLOG_CONFIG"),
		InputDir:   get("MD2BLOG_INPUT_DIR"),
		OutputDir:  get("MD2BLOG_OUTPUT_DIR"),
		SiteName:   get("MD2BLOG_SITE_NAME"),
		Author:     get("MD2BLOG_AUTHOR"),
		BaseURL:    get("MD2BLOG_BASE_URL"),
		Highlight:  get("MD2BLOG_HIGHLIGHT"),
		AssetPath:  get("MD2BLOG_ASSET_PATH"),
	}

	if workers := get("MD2BLOG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			log.Warn("ignoring environment variable", "name", "MD2BLOG_WORKERS", "value", workers)
		}
	}
	cfg.Strict = parseEnvBool(get("MD2BLOG_STRICT"), "MD2BLOG_STRICT", log)
	cfg.Ads = parseEnvBool(get("MD2BLOG_ADS"), "MD2BLOG_ADS", log)

	return cfg
}

func parseEnvBool(value, name string, log pslog.Logger) *bool {
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("ignoring environment variable", "name", name, "value", value)
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized MD2BLOG_* variables.
// Helps catch typos like MD2BLOG_OUTPUT instead of MD2BLOG_OUTPUT_DIR.
func warnUnknownEnvVars(environ []string, log pslog.Logger) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment variables that
// are set. CLI flags are applied afterwards by mergeFlags, so the precedence
// is: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.SiteName != "" {
		cfg.Site.Name = env.SiteName
	}
	if env.Author != "" {
		cfg.Site.Author = env.Author
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.Highlight != "" {
		cfg.Highlight.Style = env.Highlight
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
	if env.Strict != nil {
		cfg.Build.Strict = *env.Strict
	}
	if env.Ads != nil {
		enabled := *env.Ads
		cfg.Ads.Enabled = &enabled
	}
}
