package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	md2blog "github.com/alnah/go-md2blog"
	"github.com/alnah/go-md2blog/internal/dateutil"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.md")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"highlight":   {Values: md2blog.HighlightStyles()},
	"date-format": {Values: slices.Sorted(maps.Keys(dateutil.DatePresets))},

	"config":   {FileGlob: "*.yaml,*.yml"},
	"manifest": {FileGlob: "*.json"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "build",
			Desc:        "Build HTML pages from markdown posts",
			Flags:       extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{})),
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check config, templates and directories",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"build", "doctor", "completion", "version"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// errWriter records the first write error so generators can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords lists the long and short spellings of flags.
func flagWords(flags []flagDef) string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// globExtensions turns "*.md,*.markdown" into ["md", "markdown"].
func globExtensions(glob string) []string {
	parts := strings.Split(glob, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(p), "*."))
	}
	return exts
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	out := &errWriter{w: w}

	out.printf("# bash completion for md2blog\n")
	out.printf("_md2blog() {\n")
	out.printf("    local cur prev cmd\n")
	out.printf("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	out.printf("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	out.printf("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	out.printf("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	out.printf("        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\") $(compgen -f -X '!*.@(md|markdown)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", commandNames(cmds))
	out.printf("        return\n")
	out.printf("    fi\n\n")

	out.printf("    case \"$prev\" in\n")
	for _, f := range cmds[0].Flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			out.printf("        %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
		case flagFile:
			out.printf("        %s) COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\")); return ;;\n", pattern, strings.Join(globExtensions(f.FileGlob), "|"))
		case flagDir:
			out.printf("        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
		case flagString, flagInt:
			out.printf("        %s) return ;;\n", pattern)
		}
	}
	out.printf("    esac\n\n")

	out.printf("    case \"$cmd\" in\n")
	for _, c := range cmds {
		out.printf("        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0 && c.TakesFiles:
			out.printf("            if [[ \"$cur\" == -* ]]; then\n")
			out.printf("                COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", flagWords(c.Flags))
			out.printf("            else\n")
			out.printf("                COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", strings.Join(globExtensions(c.FilePattern), "|"))
			out.printf("            fi\n")
		case len(c.Flags) > 0:
			out.printf("            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", flagWords(c.Flags))
		case len(c.Args) > 0:
			out.printf("            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(c.Args, " "))
		}
		out.printf("            ;;\n")
	}
	out.printf("        -*) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")) ;;\n", flagWords(cmds[0].Flags))
	out.printf("    esac\n")
	out.printf("}\n\n")
	out.printf("complete -F _md2blog md2blog\n")
	return out.err
}

// zshEscape escapes characters that break zsh _arguments specs.
func zshEscape(s string) string {
	r := strings.NewReplacer("[", "\\[", "]", "\\]", ":", "\\:", "'", "'\\''")
	return r.Replace(s)
}

func zshFlagSpecs(flags []flagDef) []string {
	specs := make([]string, 0, len(flags))
	for _, f := range flags {
		var action string
		switch f.Type {
		case flagBool:
		case flagEnum:
			action = ":value:(" + strings.Join(f.Values, " ") + ")"
		case flagFile:
			action = ":file:_files -g \"*.(" + strings.Join(globExtensions(f.FileGlob), "|") + ")\""
		case flagDir:
			action = ":directory:_directories"
		default:
			action = ":value:"
		}
		desc := "[" + zshEscape(f.Desc) + "]"
		if f.Short != "" {
			specs = append(specs, fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action))
		} else {
			specs = append(specs, fmt.Sprintf("'--%s%s%s'", f.Long, desc, action))
		}
	}
	return specs
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	out := &errWriter{w: w}

	out.printf("#compdef md2blog\n\n")
	out.printf("_md2blog() {\n")
	out.printf("    local -a commands\n")
	out.printf("    commands=(\n")
	for _, c := range cmds {
		out.printf("        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	out.printf("    )\n\n")
	out.printf("    if (( CURRENT == 2 )); then\n")
	out.printf("        _describe 'command' commands\n")
	out.printf("        _files -g '*.(md|markdown)'\n")
	out.printf("        return\n")
	out.printf("    fi\n\n")
	out.printf("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		out.printf("        %s)\n", c.Name)
		switch {
		case len(c.Flags) > 0:
			out.printf("            _arguments \\\n")
			for _, spec := range zshFlagSpecs(c.Flags) {
				out.printf("                %s \\\n", spec)
			}
			if c.TakesFiles {
				out.printf("                '*:post:_files -g \"*.(%s)\"'\n", strings.Join(globExtensions(c.FilePattern), "|"))
			} else {
				out.printf("                '*: :'\n")
			}
		case len(c.Args) > 0:
			out.printf("            _values '%s' %s\n", c.Name, strings.Join(c.Args, " "))
		}
		out.printf("            ;;\n")
	}
	out.printf("    esac\n")
	out.printf("}\n\n")
	out.printf("compdef _md2blog md2blog\n")
	return out.err
}

// fishEscape escapes single quotes for fish strings.
func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	out := &errWriter{w: w}
	names := commandNames(cmds)

	out.printf("# fish completion for md2blog\n")
	out.printf("complete -c md2blog -f\n")
	for _, c := range cmds {
		out.printf("complete -c md2blog -n 'not __fish_seen_subcommand_from %s' -a %s -d '%s'\n", names, c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2blog -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			}
			out.printf("%s -d '%s'\n", line, fishEscape(f.Desc))
		}
		if len(c.Args) > 0 {
			out.printf("complete -c md2blog -n '%s' -a '%s'\n", cond, strings.Join(c.Args, " "))
		}
		if c.TakesFiles {
			for _, ext := range globExtensions(c.FilePattern) {
				out.printf("complete -c md2blog -n '%s' -a '(__fish_complete_suffix .%s)'\n", cond, ext)
			}
		}
	}
	return out.err
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	out := &errWriter{w: w}

	out.printf("# PowerShell completion for md2blog\n")
	out.printf("Register-ArgumentCompleter -Native -CommandName md2blog -ScriptBlock {\n")
	out.printf("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	out.printf("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	out.printf("    $completions = @{\n")
	for _, c := range cmds {
		var words []string
		for _, f := range c.Flags {
			words = append(words, "'--"+f.Long+"'")
			if f.Short != "" {
				words = append(words, "'-"+f.Short+"'")
			}
		}
		for _, a := range c.Args {
			words = append(words, "'"+a+"'")
		}
		out.printf("        '%s' = @(%s)\n", c.Name, strings.Join(words, ", "))
	}
	out.printf("    }\n\n")
	out.printf("    if ($words.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {\n")
	out.printf("        $candidates = $completions.Keys\n")
	out.printf("    } elseif ($completions.ContainsKey($words[1])) {\n")
	out.printf("        $candidates = $completions[$words[1]]\n")
	out.printf("    } else {\n")
	out.printf("        $candidates = $completions['build']\n")
	out.printf("    }\n\n")
	out.printf("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	out.printf("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	out.printf("    }\n")
	out.printf("}\n")
	return out.err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2blog completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2blog completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2blog completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2blog completion fish > ~/.config/fish/completions/md2blog.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2blog completion powershell | Out-String | Invoke-Expression")
}
