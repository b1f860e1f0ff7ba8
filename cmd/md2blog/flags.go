package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing failures.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags override the site section of the config.
type siteFlags struct {
	name       string
	author     string
	baseURL    string
	dateFormat string
}

// outputFlags control what the build writes besides the pages.
type outputFlags struct {
	dir             string
	manifest        string
	writeStylesheet bool
}

// renderFlags tune conversion.
type renderFlags struct {
	highlight string
	assetPath string
	noAds     bool
	strict    bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	workers int
	site    siteFlags
	output  outputFlags
	render  renderFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.name, "site-name", "", "site name")
	fs.StringVar(&f.author, "author", "", "author name")
	fs.StringVar(&f.baseURL, "base-url", "", "base URL of the published posts")
	fs.StringVar(&f.dateFormat, "date-format", "", "display date format or preset")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.StringVar(&f.manifest, "manifest", "", "write a JSON manifest of built posts to this path")
	fs.BoolVar(&f.writeStylesheet, "write-stylesheet", false, "write the stylesheet next to the pages")
}

// addRenderFlags adds conversion flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for fenced code (\"\" = none)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noAds, "no-ads", false, "disable all ads")
	fs.BoolVar(&f.strict, "strict", false, "fail posts with unterminated code blocks or tables")
}

// newBuildFlagSet registers all build flags on a new FlagSet.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addOutputFlags(fs, &f.output)
	addRenderFlags(fs, &f.render)
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, stderr io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printBuildUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// newDoctorFlagSet registers all doctor flags on a new FlagSet.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	return fs
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, stderr io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printDoctorUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}
