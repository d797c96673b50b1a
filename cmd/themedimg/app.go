package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-themedimg/internal/fileutil"
)

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// runMain dispatches args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	warnUnknownEnvVars(env.Stderr, env.Environ())

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "resolve":
		err = runResolve(ctx, rest, env)
	case "catalog":
		err = runCatalog(rest, env)
	case "verify":
		err = runVerify(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "themedimg %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		return unknownCommand(cmd, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		reportError(env, err, nil)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// unknownCommand reports cmd and suggests render for markdown paths.
func unknownCommand(cmd string, env *Environment) int {
	err := fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	if fileutil.IsMarkdown(cmd) {
		fmt.Fprintf(env.Stderr, "error: %v\n  hint: run 'themedimg render %s'\n", err, cmd)
		return exitCodeFor(err)
	}
	fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
	printUsage(env.Stderr)
	return exitCodeFor(err)
}

// reportError prints err and its hint to stderr. Errors that already
// carry a hint print it verbatim.
func reportError(env *Environment, err error, cat catalogIDs) {
	var h *hintedError
	if errors.As(err, &h) {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, h.hint)
		return
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cat))
}

// hintedError attaches a hint computed where the catalog was known.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

// withHint wraps err with the hint for it, if any.
func withHint(err error, cat catalogIDs) error {
	if err == nil {
		return nil
	}
	hint := hintFor(err, cat)
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}
