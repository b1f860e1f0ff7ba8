package main

import (
	"io"
	"os"
	"time"

	"pkt.systems/pslog"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and logging.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Environ   func() []string

	// Logger overrides the logger built from -v/-q and the PSLOG_* environment.
	Logger pslog.Logger
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
	}
}

// logger returns the injected logger, or a console logger on Stderr whose
// level follows the verbose and quiet flags.
func (e *Environment) logger(verbose, quiet bool) pslog.Logger {
	if e.Logger != nil {
		return e.Logger
	}

	opts := pslog.Options{Mode: pslog.ModeConsole, MinLevel: pslog.InfoLevel}
	switch {
	case verbose:
		opts.MinLevel = pslog.DebugLevel
	case quiet:
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.LoggerFromEnv(
		pslog.WithEnvWriter(e.Stderr),
		pslog.WithEnvOptions(opts),
	)
}
