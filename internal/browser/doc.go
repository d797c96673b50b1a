// Package browser checks rendered pages in headless Chrome.
//
// A Verifier loads a page twice, once with prefers-color-scheme emulated as
// light and once as dark, and reads back which themed images the browser
// actually displays. Every themed pair must show exactly its light element
// under the light scheme and exactly its dark element under the dark scheme.
//
// Chrome is located or downloaded by go-rod. Set ROD_BROWSER_BIN to use a
// specific binary and ROD_NO_SANDBOX=1 in containers.
package browser
