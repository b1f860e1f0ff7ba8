package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for an unrecognized command.
var ErrUnknownCommand = errors.New("unknown command")

// run dispatches args to a command and returns the exit code.
// Without a command, or when the first argument is a flag or a path, the
// build command runs.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		return runBuildCmd(ctx, nil, env)
	}

	switch args[0] {
	case "build":
		return runBuildCmd(ctx, args[1:], env)
	case "doctor":
		return runDoctorCmd(args[1:], env)
	case "completion":
		if err := runCompletion(args[1:], env); err != nil {
			return reportError(env, err, "")
		}
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2blog %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[1:], env)
		return ExitSuccess
	}

	if strings.HasPrefix(args[0], "-") || looksLikeInput(args[0]) {
		return runBuildCmd(ctx, args, env)
	}

	err := fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
	printUsage(env.Stderr)
	return exitCodeFor(err)
}

// looksLikeInput reports whether arg names a post file or a path rather
// than a mistyped command.
func looksLikeInput(arg string) bool {
	return isMarkdown(arg) || strings.ContainsAny(arg, `/\`) || arg == "." || arg == ".."
}
