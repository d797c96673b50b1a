// Package pipeline implements the Markdown-to-HTML page pipeline.
//
// This package handles the conversion and post-processing stages:
//   - Markdown to HTML conversion via Goldmark, with caller-supplied extensions
//   - Syntax highlighting CSS generation via Chroma
//   - Wrapping converted fragments in a standalone HTML5 page
//   - CSS injection into HTML documents
//   - Rebasing root-relative asset URLs for pages in nested directories
//
// Themed image resolution happens inside Goldmark through the extension
// provided by the root themedimg package. This package never inspects the
// catalog; it only shapes the HTML around what the extension produced.
package pipeline
