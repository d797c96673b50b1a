// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/alnah/go-themedimg/internal/fileutil"
)

// maxSuggestions caps the did-you-mean list for missing assets.
const maxSuggestions = 3

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large pages, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-themedimg/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-themedimg") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForCatalogDir returns hints for an unusable catalog directory.
func ForCatalogDir() string {
	return format("set catalog.dir in the config or pass --assets <dir>")
}

// ForMissingAsset suggests catalog ids close to id. Returns "" when nothing
// is close enough to be useful.
func ForMissingAsset(id string, available []string) string {
	suggestions := closest(id, available, maxSuggestions)
	if len(suggestions) == 0 {
		if len(available) == 0 {
			return format("the catalog is empty; check catalog.dir and catalog.extensions")
		}
		return ""
	}
	return format("did you mean " + strings.Join(quoteAll(suggestions), ", ") + "?")
}

// closest ranks candidates by edit distance to id and keeps those within a
// third of the id's length (at least 2 edits). Candidates sharing id's base
// name in another directory always qualify.
func closest(id string, candidates []string, limit int) []string {
	type scored struct {
		id   string
		dist int
	}

	threshold := max(len(id)/3, 2)
	base := path.Base(id)

	var matches []scored
	for _, c := range candidates {
		if c == id {
			continue
		}
		d := levenshtein.ComputeDistance(strings.ToLower(id), strings.ToLower(c))
		if d <= threshold || (base != "" && path.Base(c) == base) {
			matches = append(matches, scored{id: c, dist: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].id < matches[j].id
	})

	out := make([]string, 0, min(limit, len(matches)))
	for i := 0; i < len(matches) && i < limit; i++ {
		out = append(out, matches[i].id)
	}
	return out
}

func quoteAll(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = `"` + id + `"`
	}
	return out
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
