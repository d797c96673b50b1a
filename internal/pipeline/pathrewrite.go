package pipeline

import (
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// themeVariantAttr marks images produced by the themed image component.
const themeVariantAttr = "data-theme-variant"

// RebaseAssetURLs makes relative themed image sources resolve from a page
// nested below the output root. pagePath is the page location relative to
// the output root, slash separated (e.g. "guides/setup.html").
// Pages at the root and absolute or remote sources are left unchanged.
//
// Only img elements carrying data-theme-variant are rewritten: their
// sources are relative to the output root, while author-written images
// are already relative to the page.
func RebaseAssetURLs(htmlContent, pagePath string) (string, error) {
	prefix := rootPrefix(pagePath)
	if prefix == "" {
		return htmlContent, nil
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, prefix)

	return renderHTML(doc, isFragment)
}

// rootPrefix returns the "../" chain leading from pagePath's directory back
// to the output root.
func rootPrefix(pagePath string) string {
	dir := path.Dir(path.Clean(strings.TrimPrefix(pagePath, "/")))
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.Repeat("../", strings.Count(dir, "/")+1)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rebases themed image sources.
func rewriteNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img && hasAttr(n, themeVariantAttr) {
		for i, attr := range n.Attr {
			if attr.Key == "src" && isRelativePath(attr.Val) {
				n.Attr[i].Val = prefix + attr.Val
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, prefix)
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(p, "http://") ||
		strings.HasPrefix(p, "https://") ||
		strings.HasPrefix(p, "file://") ||
		strings.HasPrefix(p, "data:") ||
		strings.HasPrefix(p, "//") {
		return false
	}

	// Skip anchors and root-relative paths
	return !strings.HasPrefix(p, "#") && !strings.HasPrefix(p, "/")
}
