package browser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	light := func(visible bool) ImageState {
		return ImageState{Variant: "light", Src: "/_assets/l.png", Visible: visible}
	}
	dark := func(visible bool) ImageState {
		return ImageState{Variant: "dark", Src: "/_assets/d.png", Visible: visible}
	}

	tests := []struct {
		name           string
		scheme         Scheme
		states         []ImageState
		wantPairs      int
		wantViolations []Violation
	}{
		{
			name:      "no images",
			scheme:    SchemeLight,
			wantPairs: 0,
		},
		{
			name:      "light scheme shows light",
			scheme:    SchemeLight,
			states:    []ImageState{light(true), dark(false)},
			wantPairs: 1,
		},
		{
			name:      "dark scheme shows dark",
			scheme:    SchemeDark,
			states:    []ImageState{light(false), dark(true)},
			wantPairs: 1,
		},
		{
			name:      "two pairs",
			scheme:    SchemeDark,
			states:    []ImageState{light(false), dark(true), light(false), dark(true)},
			wantPairs: 2,
		},
		{
			name:           "both visible without stylesheet",
			scheme:         SchemeLight,
			states:         []ImageState{light(true), dark(true)},
			wantPairs:      1,
			wantViolations: []Violation{{Scheme: SchemeLight, Pair: 1, Reason: "both variants visible"}},
		},
		{
			name:           "none visible",
			scheme:         SchemeDark,
			states:         []ImageState{light(false), dark(false)},
			wantPairs:      1,
			wantViolations: []Violation{{Scheme: SchemeDark, Pair: 1, Reason: "no variant visible"}},
		},
		{
			name:           "inverted under light",
			scheme:         SchemeLight,
			states:         []ImageState{light(false), dark(true)},
			wantPairs:      1,
			wantViolations: []Violation{{Scheme: SchemeLight, Pair: 1, Reason: "dark variant shown (/_assets/d.png)"}},
		},
		{
			name:           "inverted under dark, second pair",
			scheme:         SchemeDark,
			states:         []ImageState{light(false), dark(true), light(true), dark(false)},
			wantPairs:      2,
			wantViolations: []Violation{{Scheme: SchemeDark, Pair: 2, Reason: "light variant shown (/_assets/l.png)"}},
		},
		{
			name:      "wrong order",
			scheme:    SchemeLight,
			states:    []ImageState{dark(false), light(true)},
			wantPairs: 1,
			wantViolations: []Violation{{
				Scheme: SchemeLight, Pair: 1, Reason: "expected light then dark variant, got dark then light",
			}},
		},
		{
			name:           "unpaired trailing image",
			scheme:         SchemeLight,
			states:         []ImageState{light(true), dark(false), light(true)},
			wantPairs:      1,
			wantViolations: []Violation{{Scheme: SchemeLight, Pair: 2, Reason: "unpaired light image /_assets/l.png"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pairs, violations := evaluate(tt.scheme, tt.states)
			if pairs != tt.wantPairs {
				t.Errorf("pairs = %d, want %d", pairs, tt.wantPairs)
			}
			if diff := cmp.Diff(tt.wantViolations, violations); diff != "" {
				t.Errorf("violations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReport_Summary(t *testing.T) {
	t.Parallel()

	ok := &Report{Path: "index.html", Pairs: 3}
	if !ok.OK() || ok.Summary() != "index.html: 3 pair(s) ok" {
		t.Errorf("Summary() = %q", ok.Summary())
	}

	bad := &Report{Path: "a.html", Pairs: 1, Violations: []Violation{
		{Scheme: SchemeDark, Pair: 1, Reason: "no variant visible"},
	}}
	if bad.OK() {
		t.Error("OK() = true, want false")
	}
	if !strings.Contains(bad.Summary(), "dark scheme, pair 1: no variant visible") {
		t.Errorf("Summary() = %q", bad.Summary())
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	if got := pathToFileURL("/tmp/site/index.html"); got != "file:///tmp/site/index.html" {
		t.Errorf("pathToFileURL() = %q", got)
	}
	if got := pathToFileURL("/tmp/my site/a.html"); got != "file:///tmp/my%20site/a.html" {
		t.Errorf("pathToFileURL() = %q, want escaped space", got)
	}
}
