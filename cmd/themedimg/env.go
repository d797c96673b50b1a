package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-themedimg/internal/browser"
	xlog "github.com/alnah/go-themedimg/internal/log"
)

// PageVerifier checks rendered pages in a headless browser.
type PageVerifier interface {
	VerifyFile(ctx context.Context, path string) (*browser.Report, error)
	Close() error
}

// Compile-time interface implementation check.
var _ PageVerifier = (*browser.Verifier)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Getenv      func(string) string
	Environ     func() []string
	NewVerifier func(timeout time.Duration) PageVerifier
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		NewVerifier: func(timeout time.Duration) PageVerifier {
			return browser.New(
				browser.WithTimeout(timeout),
				browser.WithLogger(xlog.WithComponent("browser")),
			)
		},
	}
}
