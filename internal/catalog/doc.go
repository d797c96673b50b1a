// Package catalog implements the build-time image asset catalog.
//
// # Lifecycle
//
// A Catalog is built once by walking a root directory for files whose
// extension is in a fixed set, then frozen:
//
//	{root}/
//	├── logo-light.png          -> id "logo-light.png"
//	├── logo-dark.png           -> id "logo-dark.png"
//	└── diagrams/
//	    └── flow.svg            -> id "diagrams/flow.svg"
//
// Ids are slash-separated paths relative to the root. After New returns,
// the set of ids never changes, so lookups take no locks and the catalog can
// be shared by any number of goroutines.
//
// # Materialization
//
// Materialize probes an entry (format, intrinsic width and height),
// optionally recompresses PNG data, derives a content hash and hands the
// bytes to an Emitter under a content-addressed name:
//
//	logo-light.png -> logo-light.3f9a1c2b.png
//
// Each entry materializes at most once; later calls return the memoized
// descriptor (or error), so repeated resolution is idempotent.
//
// # Security
//
// Ids are validated with fs.ValidPath. NewFromDir resolves symlinks in the
// root and skips symlinked files whose target escapes it.
package catalog
