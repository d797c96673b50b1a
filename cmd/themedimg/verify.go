package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-themedimg/internal/browser"
)

// ErrVerification reports pages where a themed pair does not switch with
// the color scheme.
var ErrVerification = errors.New("themed image check failed")

// runVerify loads rendered pages in a headless browser under both color
// schemes and checks that exactly one variant of every pair is visible.
func runVerify(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseVerifyFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: verify takes a single file or directory, got %d", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	configureLogging(flags.common, cfg, env)

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	target := cfg.Output.Dir
	if len(positional) == 1 {
		target = positional[0]
	}
	pages, err := discoverHTML(target)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("%w: no HTML pages found in %s", ErrNoInput, target)
	}

	v := env.NewVerifier(timeout)
	defer func() { _ = v.Close() }()

	failed := 0
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		report, err := v.VerifyFile(ctx, page)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", page, err)
		}
		if report.OK() {
			printLine(env.Stdout, flags.common.quiet, "%s", report.Summary())
			continue
		}
		failed++
		fmt.Fprintf(env.Stderr, "FAILED %s\n", report.Summary())
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d page(s)", ErrVerification, failed, len(pages))
	}
	return nil
}

// resolveTimeout picks the page timeout.
// Priority: --timeout > THEMEDIMG_TIMEOUT > browser.DefaultTimeout.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: --timeout %q: %v", ErrUsage, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return browser.DefaultTimeout, nil
}

// discoverHTML returns path itself for a file, or every .html file below
// a directory in lexical order.
func discoverHTML(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var pages []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".html") {
			pages = append(pages, p)
		}
		return nil
	})
	return pages, err
}
