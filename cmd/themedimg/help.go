package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: themedimg <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown pages with themed images")
	fmt.Fprintln(w, "  resolve    Print the markup for one light/dark pair")
	fmt.Fprintln(w, "  catalog    List the image catalog")
	fmt.Fprintln(w, "  verify     Check rendered pages in a headless browser")
	fmt.Fprintln(w, "  doctor     Check the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'themedimg help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printCatalogFlagsUsage prints the catalog selection flags.
func printCatalogFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Catalog:")
	fmt.Fprintln(w, "  -a, --assets <dir>        Image catalog directory (default src/assets)")
	fmt.Fprintln(w, "      --base-path <url>     Public URL prefix of assets (default /_assets)")
	fmt.Fprintln(w, "      --ext <list>          Image extensions (default png,jpg,jpeg,gif,webp,svg)")
	fmt.Fprintln(w, "      --recompress-png      Losslessly recompress PNG assets")
}

// printThemeFlagsUsage prints the class set flags.
func printThemeFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Theme:")
	fmt.Fprintln(w, "      --classes <s>         Class preset: default, tailwind, custom")
	fmt.Fprintln(w, "      --light-class <s>     Light variant class (implies custom)")
	fmt.Fprintln(w, "      --dark-class <s>      Dark variant class (implies custom)")
	fmt.Fprintln(w, "      --no-stylesheet       Do not embed the theme stylesheet")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: themedimg render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files into HTML pages. Each")
	fmt.Fprintln(w, `  <ThemedImage light="..." dark="..." alt="..." />`)
	fmt.Fprintln(w, "block becomes two images, one per color scheme. Referenced images are")
	fmt.Fprintln(w, "written to the output directory under content-hashed names.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (.md, .markdown, .mdx)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default dist)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style for code blocks (default github)")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file embedded in every page")
	fmt.Fprintln(w)
	printCatalogFlagsUsage(w)
	fmt.Fprintln(w)
	printThemeFlagsUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printResolveUsage prints usage for the resolve command.
func printResolveUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: themedimg resolve <light> <dark> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve two catalog ids and print the resulting markup.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --alt <text>          Alternative text for both variants")
	fmt.Fprintln(w, "  -o, --output <dir>        Also write the processed assets below dir")
	fmt.Fprintln(w)
	printCatalogFlagsUsage(w)
	fmt.Fprintln(w)
	printThemeFlagsUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCatalogUsage prints usage for the catalog command.
func printCatalogUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: themedimg catalog [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List every catalog entry with its format, size and public URL.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print entries as JSON")
	fmt.Fprintln(w, "      --yaml                Print entries as YAML")
	fmt.Fprintln(w)
	printCatalogFlagsUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printVerifyUsage prints usage for the verify command.
func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: themedimg verify [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load rendered pages under light and dark color schemes and check that")
	fmt.Fprintln(w, "exactly one variant of every themed pair is visible. Requires Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path     HTML file or directory (default: output directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-page load timeout (default 30s)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: themedimg doctor [--json] [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the catalog directory, Chrome and the environment.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "resolve":
		printResolveUsage(env.Stdout)
	case "catalog":
		printCatalogUsage(env.Stdout)
	case "verify":
		printVerifyUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: themedimg version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: themedimg help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
