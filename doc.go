// Package themedimg renders light/dark image pairs that switch with the
// viewer's color-scheme preference, without client-side script.
//
// # Quick Start
//
// Build a catalog, create a resolver, and resolve a pair of identifiers:
//
//	cat, err := themedimg.NewCatalog("src/assets",
//	    themedimg.WithOutputDir("dist/_assets"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := themedimg.NewResolver(cat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frag, err := res.Resolve("logo-light.png", "logo-dark.png", "Company logo")
//	var missing *themedimg.MissingAssetError
//	if errors.As(err, &missing) {
//	    log.Fatalf("fix %s (searched %s)", missing.ID, missing.SearchPattern)
//	}
//
// The fragment holds two img elements. The light one is shown by default
// and hidden under prefers-color-scheme: dark; the dark one does the
// opposite. Both carry the same alt text.
//
// # Catalog
//
// A catalog is built once from a directory and never changes afterwards.
// Identifiers are slash-separated paths relative to that directory:
//
//	src/assets/
//	├── logo-light.png          -> "logo-light.png"
//	├── logo-dark.png           -> "logo-dark.png"
//	└── diagrams/
//	    └── flow.svg            -> "diagrams/flow.svg"
//
// Resolving an identifier materializes it once: the image is probed for
// format and size, hashed, and written to the output directory under a
// content-addressed name such as logo-light.3f9a1c2b.png.
//
// # Visibility Classes
//
// Visibility is conditioned by a ClassSet. DefaultClasses comes with the CSS
// returned by ClassSet.Stylesheet; TailwindClasses relies on the site's
// Tailwind build using the "media" dark mode strategy.
//
// # Markdown
//
// NewExtension plugs the resolver into goldmark. A block such as
//
//	<ThemedImage light="logo-light.png" dark="logo-dark.png" alt="Company logo" />
//
// becomes the fragment. Renderer wraps this into standalone HTML pages with
// the stylesheet and syntax highlighting CSS embedded.
package themedimg
