package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// catalogFlags selects and configures the image catalog.
type catalogFlags struct {
	assets        string
	basePath      string
	extensions    []string
	recompressPNG bool
}

// themeFlags selects the class set tying variants to color schemes.
type themeFlags struct {
	classes      string
	lightClass   string
	darkClass    string
	noStylesheet bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common         commonFlags
	catalog        catalogFlags
	theme          themeFlags
	output         string
	workers        int
	highlightStyle string
	css            string
}

// resolveFlags holds all flags for the resolve command.
type resolveFlags struct {
	common  commonFlags
	catalog catalogFlags
	theme   themeFlags
	alt     string
	output  string
}

// catalogCmdFlags holds all flags for the catalog command.
type catalogCmdFlags struct {
	common  commonFlags
	catalog catalogFlags
	json    bool
	yaml    bool
}

// verifyFlags holds all flags for the verify command.
type verifyFlags struct {
	common  commonFlags
	timeout string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addCatalogFlags adds catalog flags to a FlagSet.
func addCatalogFlags(fs *flag.FlagSet, f *catalogFlags) {
	fs.StringVarP(&f.assets, "assets", "a", "", "image catalog directory (default src/assets)")
	fs.StringVar(&f.basePath, "base-path", "", "public URL prefix of emitted assets (default /_assets)")
	fs.StringSliceVar(&f.extensions, "ext", nil, "image extensions to catalog (repeatable or comma separated)")
	fs.BoolVar(&f.recompressPNG, "recompress-png", false, "losslessly recompress PNG assets")
}

// addThemeFlags adds class set flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVar(&f.classes, "classes", "", "class preset: default, tailwind, custom")
	fs.StringVar(&f.lightClass, "light-class", "", "light variant class (implies --classes custom)")
	fs.StringVar(&f.darkClass, "dark-class", "", "dark variant class (implies --classes custom)")
	fs.BoolVar(&f.noStylesheet, "no-stylesheet", false, "do not embed the theme stylesheet")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default dist)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.StringVar(&f.css, "css", "", "extra CSS file embedded in every page")
	addCommonFlags(fs, &f.common)
	addCatalogFlags(fs, &f.catalog)
	addThemeFlags(fs, &f.theme)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseResolveFlags parses resolve command flags and returns positional args.
func parseResolveFlags(args []string, w io.Writer) (*resolveFlags, []string, error) {
	f := &resolveFlags{}
	fs := newFlagSet("resolve", w, printResolveUsage)

	fs.StringVar(&f.alt, "alt", "", "alternative text shared by both variants")
	fs.StringVarP(&f.output, "output", "o", "", "write processed assets below this directory")
	addCommonFlags(fs, &f.common)
	addCatalogFlags(fs, &f.catalog)
	addThemeFlags(fs, &f.theme)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCatalogFlags parses catalog command flags and returns positional args.
func parseCatalogFlags(args []string, w io.Writer) (*catalogCmdFlags, []string, error) {
	f := &catalogCmdFlags{}
	fs := newFlagSet("catalog", w, printCatalogUsage)

	fs.BoolVar(&f.json, "json", false, "print entries as JSON")
	fs.BoolVar(&f.yaml, "yaml", false, "print entries as YAML")
	addCommonFlags(fs, &f.common)
	addCatalogFlags(fs, &f.catalog)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseVerifyFlags parses verify command flags and returns positional args.
func parseVerifyFlags(args []string, w io.Writer) (*verifyFlags, []string, error) {
	f := &verifyFlags{}
	fs := newFlagSet("verify", w, printVerifyUsage)

	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page load timeout (e.g. 30s, 2m)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
