package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	themedimg "github.com/alnah/go-themedimg"
	"github.com/alnah/go-themedimg/internal/config"
	xlog "github.com/alnah/go-themedimg/internal/log"
)

// loadConfig layers configuration: defaults, config file, environment.
// The config name comes from --config, then THEMEDIMG_CONFIG.
func loadConfig(common commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeCatalogFlags merges catalog flags into config. CLI values override config values.
func mergeCatalogFlags(f catalogFlags, cfg *config.Config) {
	if f.assets != "" {
		cfg.Catalog.Dir = f.assets
	}
	if f.basePath != "" {
		cfg.Catalog.BasePath = f.basePath
	}
	if len(f.extensions) > 0 {
		cfg.Catalog.Extensions = f.extensions
	}
	if f.recompressPNG {
		cfg.Catalog.RecompressPNG = true
	}
}

// mergeThemeFlags merges theme flags into config. Setting either class
// switches to the custom preset.
func mergeThemeFlags(f themeFlags, cfg *config.Config) {
	if f.classes != "" {
		cfg.Theme.Classes = f.classes
	}
	if f.lightClass != "" || f.darkClass != "" {
		cfg.Theme.Classes = config.ClassesCustom
		if f.lightClass != "" {
			cfg.Theme.LightClass = f.lightClass
		}
		if f.darkClass != "" {
			cfg.Theme.DarkClass = f.darkClass
		}
	}
	if f.noStylesheet {
		cfg.Theme.InjectStylesheet = false
	}
}

// configureLogging installs the global logger. --verbose and --quiet win
// over THEMEDIMG_LOG_LEVEL, which wins over log.level.
func configureLogging(common commonFlags, cfg *config.Config, env *Environment) zerolog.Logger {
	level := cfg.Log.Level
	if v := env.Getenv("THEMEDIMG_LOG_LEVEL"); v != "" {
		level = v
	}
	switch {
	case common.verbose:
		level = "debug"
	case common.quiet:
		level = "error"
	}
	return xlog.Configure(xlog.Config{Level: level, Output: env.Stderr})
}

// classSetFor maps the theme section to a class set. Custom classes that
// hold several classes or variant prefixes are treated as utility classes
// whose CSS ships with the site.
func classSetFor(cfg *config.Config) (themedimg.ClassSet, error) {
	if !strings.EqualFold(cfg.Theme.Classes, config.ClassesCustom) {
		return themedimg.ClassSetByName(cfg.Theme.Classes)
	}

	cs := themedimg.ClassSet{
		Light: strings.TrimSpace(cfg.Theme.LightClass),
		Dark:  strings.TrimSpace(cfg.Theme.DarkClass),
	}
	cs.External = isUtilityClassList(cs.Light) || isUtilityClassList(cs.Dark)
	if err := cs.Validate(); err != nil {
		return themedimg.ClassSet{}, err
	}
	return cs, nil
}

func isUtilityClassList(s string) bool {
	return strings.ContainsAny(s, " :")
}

// assetDir is where processed assets land: the base path mirrored below
// the output directory, so "/_assets" maps to "<out>/_assets".
func assetDir(outputDir, basePath string) string {
	if strings.Contains(basePath, "://") {
		return outputDir
	}
	return filepath.Join(outputDir, filepath.FromSlash(strings.Trim(basePath, "/")))
}

// buildCatalog scans the configured catalog directory. Assets are written
// below outputDir when it is non-empty.
func buildCatalog(cfg *config.Config, outputDir string) (themedimg.Catalog, error) {
	opts := []themedimg.CatalogOption{
		themedimg.WithBasePath(cfg.Catalog.BasePath),
		themedimg.WithPNGRecompression(cfg.Catalog.RecompressPNG),
		themedimg.WithCatalogLogger(xlog.WithComponent("catalog")),
	}
	if len(cfg.Catalog.Extensions) > 0 {
		opts = append(opts, themedimg.WithExtensions(cfg.Catalog.Extensions...))
	}
	if outputDir != "" {
		opts = append(opts, themedimg.WithOutputDir(assetDir(outputDir, cfg.Catalog.BasePath)))
	}
	return themedimg.NewCatalog(cfg.Catalog.Dir, opts...)
}

// buildResolver creates a resolver over cat using the configured classes.
func buildResolver(cfg *config.Config, cat themedimg.Catalog) (*themedimg.Resolver, error) {
	classes, err := classSetFor(cfg)
	if err != nil {
		return nil, err
	}
	return themedimg.NewResolver(cat,
		themedimg.WithClasses(classes),
		themedimg.WithLogger(xlog.WithComponent("resolver")),
	)
}

// printLine writes a line unless quiet is set.
func printLine(w io.Writer, quiet bool, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(w, format+"\n", args...)
}
