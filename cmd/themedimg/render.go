package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	themedimg "github.com/alnah/go-themedimg"
	"github.com/alnah/go-themedimg/internal/config"
	"github.com/alnah/go-themedimg/internal/fileutil"
	xlog "github.com/alnah/go-themedimg/internal/log"
)

// Sentinel errors for the render command.
var (
	ErrNoInput               = errors.New("no input specified")
	ErrReadMarkdown          = errors.New("failed to read markdown file")
	ErrReadCSS               = errors.New("failed to read CSS file")
	ErrWritePage             = errors.New("failed to write page")
	ErrInvalidInputExtension = errors.New("file must have .md, .markdown or .mdx extension")
	ErrInvalidWorkerCount    = errors.New("invalid worker count")
)

// PageRenderer renders one document. *themedimg.Renderer implements it.
type PageRenderer interface {
	Render(ctx context.Context, doc themedimg.Document) (*themedimg.Page, error)
}

// Compile-time interface implementation check.
var _ PageRenderer = (*themedimg.Renderer)(nil)

// pageJob is a single markdown file to render.
type pageJob struct {
	InputPath  string
	OutputPath string
	PagePath   string // output path relative to the output root, slash separated
}

// renderResult holds the outcome of a single page.
type renderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// batchError reports failed pages. It unwraps to every page error so exit
// codes reflect the underlying causes.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d page(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error { return e.errs }

// usageError wraps flag parsing failures so they map to ExitUsage.
func usageError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// runRender renders markdown files into HTML pages below the output directory.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: render takes a single input, got %d", ErrUsage, len(positional))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	configureLogging(flags.common, cfg, env)

	if len(positional) == 0 {
		return fmt.Errorf("%w: pass a markdown file or directory", ErrNoInput)
	}
	input := positional[0]

	jobs, err := discoverPages(input, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, input)
	}

	extraCSS, err := readCSS(flags.css)
	if err != nil {
		return err
	}

	cat, err := buildCatalog(cfg, cfg.Output.Dir)
	if err != nil {
		return err
	}
	resolver, err := buildResolver(cfg, cat)
	if err != nil {
		return err
	}
	renderer, err := themedimg.NewRenderer(resolver,
		themedimg.WithHighlightStyle(cfg.Render.HighlightStyle),
		themedimg.WithStylesheet(cfg.Theme.InjectStylesheet),
		themedimg.WithExtraCSS(extraCSS),
		themedimg.WithRendererLogger(xlog.WithComponent("renderer")),
	)
	if err != nil {
		return err
	}

	workers := resolveWorkers(cfg.Render.Workers)
	logger := xlog.WithComponent("render")
	logger.Debug().
		Int(xlog.FieldCount, len(jobs)).
		Int(xlog.FieldWorkers, workers).
		Str(xlog.FieldPath, cfg.Output.Dir).
		Msg("rendering pages")

	results := renderBatch(ctx, renderer, jobs, workers)
	if failed := printRenderResults(env, results, cat, flags.common); failed != nil {
		return failed
	}
	return nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	mergeCatalogFlags(flags.catalog, cfg)
	mergeThemeFlags(flags.theme, cfg)
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
	if flags.highlightStyle != "" {
		cfg.Render.HighlightStyle = flags.highlightStyle
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers determines the render concurrency.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	available := runtime.GOMAXPROCS(0)
	if available > config.MaxWorkers {
		return config.MaxWorkers
	}
	return max(available, 1)
}

// readCSS loads the extra stylesheet, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(data), nil
}

// discoverPages finds the markdown files below inputPath and maps each to
// its page under outputDir, mirroring the input tree. Hidden and "_"
// prefixed directories are skipped, and so is outputDir itself.
func discoverPages(inputPath, outputDir string) ([]pageJob, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidInputExtension, filepath.Ext(inputPath))
		}
		return []pageJob{newPageJob(inputPath, filepath.Base(inputPath), outputDir)}, nil
	}

	absOut, _ := filepath.Abs(outputDir)

	var jobs []pageJob
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path == inputPath {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && abs == absOut {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsMarkdown(path) {
			return nil
		}
		rel, err := filepath.Rel(inputPath, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, newPageJob(path, rel, outputDir))
		return nil
	})
	return jobs, err
}

// newPageJob maps the markdown file at rel (relative to the input root)
// to its .html page.
func newPageJob(inputPath, rel, outputDir string) pageJob {
	page := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return pageJob{
		InputPath:  inputPath,
		OutputPath: filepath.Join(outputDir, page),
		PagePath:   filepath.ToSlash(page),
	}
}

// renderBatch renders jobs with at most workers pages in flight. A failed
// page does not stop the others; results keep the order of jobs.
func renderBatch(ctx context.Context, r PageRenderer, jobs []pageJob, workers int) []renderResult {
	if len(jobs) == 0 {
		return nil
	}

	results := make([]renderResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = renderResult{InputPath: job.InputPath, Err: err}
				return nil
			}
			results[i] = renderPage(ctx, r, job)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// renderPage renders one file and writes the page atomically.
func renderPage(ctx context.Context, r PageRenderer, job pageJob) renderResult {
	start := time.Now()
	result := renderResult{
		InputPath:  job.InputPath,
		OutputPath: job.OutputPath,
	}

	content, err := os.ReadFile(job.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = time.Since(start)
		return result
	}

	page, err := r.Render(ctx, themedimg.Document{
		Markdown: string(content),
		Path:     job.PagePath,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(job.OutputPath, page.HTML); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWritePage, err)
	}
	result.Duration = time.Since(start)
	return result
}

// printRenderResults reports every page and returns a *batchError when
// any failed.
func printRenderResults(env *Environment, results []renderResult, cat catalogIDs, common commonFlags) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, cat))
			continue
		}
		if common.verbose {
			printLine(env.Stdout, common.quiet, "%s -> %s (%v)", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			printLine(env.Stdout, common.quiet, "Created %s", r.OutputPath)
		}
	}

	if len(results) > 1 {
		printLine(env.Stdout, common.quiet, "\n%d succeeded, %d failed", len(results)-len(errs), len(errs))
	}

	if len(errs) == 0 {
		return nil
	}
	return &batchError{failed: len(errs), total: len(results), errs: errs}
}
