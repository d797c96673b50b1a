package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/alnah/go-themedimg/internal/yamlutil"
)

// catalogEntry is one line of the catalog listing.
type catalogEntry struct {
	ID     string `json:"id" yaml:"id"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
	Hash   string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Src    string `json:"src,omitempty" yaml:"src,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// catalogListing is the document printed by catalog --json and --yaml.
type catalogListing struct {
	Pattern string         `json:"pattern" yaml:"pattern"`
	Entries []catalogEntry `json:"entries" yaml:"entries"`
}

// runCatalog lists every catalog entry with its probed metadata.
// Nothing is written to the output directory.
func runCatalog(args []string, env *Environment) error {
	flags, positional, err := parseCatalogFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: catalog takes no arguments", ErrUsage)
	}
	if flags.json && flags.yaml {
		return fmt.Errorf("%w: --json and --yaml are mutually exclusive", ErrUsage)
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}
	mergeCatalogFlags(flags.catalog, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	configureLogging(flags.common, cfg, env)

	cat, err := buildCatalog(cfg, "")
	if err != nil {
		return err
	}

	listing := catalogListing{Pattern: cat.Pattern(), Entries: []catalogEntry{}}
	var errs []error
	for _, id := range cat.IDs() {
		d, err := cat.Materialize(id)
		if err != nil {
			errs = append(errs, err)
			listing.Entries = append(listing.Entries, catalogEntry{ID: id, Error: err.Error()})
			continue
		}
		listing.Entries = append(listing.Entries, catalogEntry{
			ID:     d.ID,
			Format: d.Format,
			Width:  d.Width,
			Height: d.Height,
			Hash:   d.Hash,
			Src:    d.Src,
		})
	}

	switch {
	case flags.json:
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listing); err != nil {
			return err
		}
	case flags.yaml:
		out, err := yamlutil.Marshal(listing)
		if err != nil {
			return err
		}
		if _, err := env.Stdout.Write(out); err != nil {
			return err
		}
	default:
		printCatalogListing(env, listing, flags.common.quiet)
	}

	return errors.Join(errs...)
}

// printCatalogListing writes a table of entries followed by the pattern.
func printCatalogListing(env *Environment, l catalogListing, quiet bool) {
	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range l.Entries {
		if e.Error != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t%s\n", e.ID, e.Error)
			continue
		}
		size := "-"
		if e.Width > 0 && e.Height > 0 {
			size = fmt.Sprintf("%dx%d", e.Width, e.Height)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Format, size, e.Src)
	}
	_ = tw.Flush()

	printLine(env.Stdout, quiet, "\n%d asset(s) in %s", len(l.Entries), l.Pattern)
}
