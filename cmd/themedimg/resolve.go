package main

import (
	"context"
	"fmt"
)

// runResolve prints the fragment for one light/dark pair.
func runResolve(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseResolveFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 2 {
		return fmt.Errorf("%w: resolve takes <light> <dark>, got %d argument(s)", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}
	mergeCatalogFlags(flags.catalog, cfg)
	mergeThemeFlags(flags.theme, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	configureLogging(flags.common, cfg, env)

	cat, err := buildCatalog(cfg, flags.output)
	if err != nil {
		return err
	}
	resolver, err := buildResolver(cfg, cat)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	fragment, err := resolver.Resolve(positional[0], positional[1], flags.alt)
	if err != nil {
		return withHint(err, cat)
	}

	if _, err := fragment.WriteTo(env.Stdout); err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout)

	return nil
}
