package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	flag "github.com/spf13/pflag"
	"pkt.systems/pslog"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/config"
	"github.com/alnah/go-md2blog/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"`
	Config    configInfo    `json:"config"`
	Input     inputInfo     `json:"input"`
	Output    outputInfo    `json:"output"`
	Converter converterInfo `json:"converter"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// configInfo reports which config was loaded.
type configInfo struct {
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	Defaults bool   `json:"defaults"`
}

// inputInfo reports the posts the build would pick up.
type inputInfo struct {
	Dir     string `json:"dir,omitempty"`
	Posts   int    `json:"posts"`
	Skipped int    `json:"skipped"`
}

// outputInfo reports whether pages can be written.
type outputInfo struct {
	Dir      string `json:"dir"`
	Writable bool   `json:"writable"`
}

// converterInfo reports whether templates and options load.
type converterInfo struct {
	Ready     bool   `json:"ready"`
	AssetPath string `json:"asset_path,omitempty"`
	Highlight string `json:"highlight,omitempty"`
	Ads       bool   `json:"ads"`
}

// systemInfo holds runtime details.
type systemInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	GoVersion  string `json:"go_version"`
	MaxProcs   int    `json:"gomaxprocs"`
	Workers    int    `json:"workers"`
	CI         bool   `json:"ci"`
	AppVersion string `json:"version"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return reportError(env, err, "")
	}

	result := runDoctor(flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against the effective config.
func runDoctor(flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{Status: statusReady}
	log := env.logger(false, true)

	envCfg := loadEnvConfig(env, log)
	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := checkConfig(result, name, log)
	if cfg != nil {
		applyEnvConfig(envCfg, cfg)
		if err := cfg.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Config invalid: %v", err))
		}
		checkInput(result, cfg)
		checkOutput(result, cfg)
		checkConverter(result, cfg, env)
		result.System.Workers = md2blog.ResolveWorkers(cfg.Build.Workers, max(result.Input.Posts, 1))
	}
	checkSystem(result, env)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkConfig loads the config the build would use.
func checkConfig(result *doctorResult, name string, log pslog.Logger) *config.Config {
	result.Config.Name = name
	if name == "" {
		result.Config.Name = config.DefaultName
	}

	cfg, err := loadConfig(name, log)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Config: %v", err))
		return nil
	}

	// loadConfig falls back to defaults only when no name was given.
	if name == "" {
		_, statErr := config.LoadConfig(config.DefaultName)
		result.Config.Defaults = errors.Is(statErr, config.ErrConfigNotFound)
	}
	result.Config.Found = !result.Config.Defaults
	return cfg
}

// checkInput counts the posts under the default input directory.
func checkInput(result *doctorResult, cfg *config.Config) {
	result.Input.Dir = cfg.Input.DefaultDir
	if cfg.Input.DefaultDir == "" {
		result.Warnings = append(result.Warnings,
			"No input.defaultDir configured; pass the input on the command line")
		return
	}
	if !fileutil.DirExists(cfg.Input.DefaultDir) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Input directory %s does not exist", cfg.Input.DefaultDir))
		return
	}

	posts, skipped, err := discoverPosts(cfg.Input.DefaultDir, cfg.Input.Skip)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Input: %v", err))
		return
	}
	result.Input.Posts = len(posts)
	result.Input.Skipped = len(skipped)
	if len(posts) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No posts found in %s", cfg.Input.DefaultDir))
	}
}

// checkOutput verifies that the output directory accepts files. A missing
// directory is checked through its nearest existing parent.
func checkOutput(result *doctorResult, cfg *config.Config) {
	dir := cfg.Output.DefaultDir
	result.Output.Dir = dir

	probe := dir
	for {
		info, err := os.Stat(probe)
		if err == nil && info.IsDir() {
			break
		}
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", dir))
			return
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	f, err := os.CreateTemp(probe, ".md2blog-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", dir))
		return
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	result.Output.Writable = true
}

// checkConverter builds a converter to validate templates and options.
func checkConverter(result *doctorResult, cfg *config.Config, env *Environment) {
	result.Converter.AssetPath = cfg.Assets.BasePath
	result.Converter.Highlight = cfg.Highlight.Style
	result.Converter.Ads = cfg.Ads.On()

	if _, err := newConverter(cfg, env.Now); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Converter: %v", err))
		return
	}
	result.Converter.Ready = true
}

// checkSystem records runtime details and CI detection.
func checkSystem(result *doctorResult, env *Environment) {
	result.System.OS = runtime.GOOS
	result.System.Arch = runtime.GOARCH
	result.System.GoVersion = runtime.Version()
	result.System.MaxProcs = runtime.GOMAXPROCS(0)
	result.System.AppVersion = Version

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if val, ok := env.LookupEnv(v); ok && val != "" {
			result.System.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2blog doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	switch {
	case r.Config.Defaults:
		fmt.Fprintln(w, "  [OK] No config file, using defaults")
	case r.Config.Found:
		fmt.Fprintf(w, "  [OK] Loaded %s\n", r.Config.Name)
	default:
		fmt.Fprintf(w, "  [ERROR] Could not load %s\n", r.Config.Name)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Posts")
	if r.Input.Dir != "" {
		fmt.Fprintf(w, "  [OK] %d post(s) in %s", r.Input.Posts, r.Input.Dir)
		if r.Input.Skipped > 0 {
			fmt.Fprintf(w, " (%d skipped)", r.Input.Skipped)
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "  [WARN] No default input directory")
	}
	if r.Output.Writable {
		fmt.Fprintf(w, "  [OK] Output: %s (writable)\n", r.Output.Dir)
	} else if r.Output.Dir != "" {
		fmt.Fprintf(w, "  [ERROR] Output: %s (not writable)\n", r.Output.Dir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Converter")
	if r.Converter.Ready {
		fmt.Fprintln(w, "  [OK] Templates loaded")
	} else {
		fmt.Fprintln(w, "  [ERROR] Templates or options invalid")
	}
	if r.Converter.AssetPath != "" {
		fmt.Fprintf(w, "  [OK] Asset path: %s\n", r.Converter.AssetPath)
	}
	if r.Converter.Highlight != "" {
		fmt.Fprintf(w, "  [OK] Highlight: %s\n", r.Converter.Highlight)
	}
	if r.Converter.Ads {
		fmt.Fprintln(w, "  [OK] Ads: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Ads: disabled")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (%s)\n", r.System.OS, r.System.Arch, r.System.GoVersion)
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d, workers: %d\n", r.System.MaxProcs, r.System.Workers)
	if r.System.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
