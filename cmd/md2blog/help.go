package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build HTML pages from markdown posts (default)")
	fmt.Fprintln(w, "  doctor      Check config, templates and directories")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2blog help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog build [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one HTML page per markdown post.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Post file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --manifest <path>     Write a JSON manifest of built posts")
	fmt.Fprintln(w, "      --write-stylesheet    Write the stylesheet next to the pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --site-name <s>       Site name")
	fmt.Fprintln(w, "      --author <s>          Author name")
	fmt.Fprintln(w, "      --base-url <url>      Base URL of the published posts")
	fmt.Fprintln(w, "      --date-format <s>     Display date format")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Posted] MMMM D")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --highlight <style>   Chroma style for fenced code (e.g. github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates and styles")
	fmt.Fprintln(w, "      --no-ads              Disable all ads")
	fmt.Fprintln(w, "      --strict              Fail posts with unterminated code blocks or tables")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2BLOG_CONFIG, MD2BLOG_INPUT_DIR, MD2BLOG_OUTPUT_DIR, MD2BLOG_SITE_NAME,")
	fmt.Fprintln(w, "  MD2BLOG_AUTHOR, MD2BLOG_BASE_URL, MD2BLOG_HIGHLIGHT, MD2BLOG_ASSET_PATH,")
	fmt.Fprintln(w, "  MD2BLOG_WORKERS, MD2BLOG_STRICT, MD2BLOG_ADS")
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a build would start: config, posts, output directory and templates.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --json                Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2blog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2blog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
