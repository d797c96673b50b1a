package browser

import (
	"fmt"
	"strings"
)

// Scheme is an emulated prefers-color-scheme value.
type Scheme string

// Color schemes checked by a Verifier, in order.
const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// Schemes lists every scheme a page is checked under.
var Schemes = []Scheme{SchemeLight, SchemeDark}

// Variant values carried by data-theme-variant.
const (
	variantLight = "light"
	variantDark  = "dark"
)

// ImageState is what the browser reports for one themed img element.
type ImageState struct {
	Variant string `json:"variant"`
	Src     string `json:"src"`
	Visible bool   `json:"visible"`
}

// Violation describes a pair that did not switch as expected.
type Violation struct {
	Scheme Scheme
	Pair   int // 1-based position of the pair in document order
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s scheme, pair %d: %s", v.Scheme, v.Pair, v.Reason)
}

// Report is the outcome of verifying one page.
type Report struct {
	Path       string
	Pairs      int
	Violations []Violation
}

// OK reports whether every pair behaved under every scheme.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// Summary returns a one-line description of the report.
func (r *Report) Summary() string {
	if r.OK() {
		return fmt.Sprintf("%s: %d pair(s) ok", r.Path, r.Pairs)
	}
	parts := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %d violation(s): %s", r.Path, len(r.Violations), strings.Join(parts, "; "))
}

// evaluate checks the images observed under scheme. Themed images come in
// document order as light/dark pairs.
func evaluate(scheme Scheme, states []ImageState) (pairs int, violations []Violation) {
	for i := 0; i < len(states); i += 2 {
		pair := i/2 + 1
		light := states[i]

		if i+1 >= len(states) {
			violations = append(violations, Violation{Scheme: scheme, Pair: pair, Reason: "unpaired " + light.Variant + " image " + light.Src})
			break
		}
		dark := states[i+1]
		pairs++

		if light.Variant != variantLight || dark.Variant != variantDark {
			violations = append(violations, Violation{
				Scheme: scheme,
				Pair:   pair,
				Reason: fmt.Sprintf("expected light then dark variant, got %s then %s", light.Variant, dark.Variant),
			})
			continue
		}

		wantLight := scheme == SchemeLight
		switch {
		case light.Visible && dark.Visible:
			violations = append(violations, Violation{Scheme: scheme, Pair: pair, Reason: "both variants visible"})
		case !light.Visible && !dark.Visible:
			violations = append(violations, Violation{Scheme: scheme, Pair: pair, Reason: "no variant visible"})
		case light.Visible != wantLight:
			shown := dark
			if light.Visible {
				shown = light
			}
			violations = append(violations, Violation{
				Scheme: scheme,
				Pair:   pair,
				Reason: fmt.Sprintf("%s variant shown (%s)", shown.Variant, shown.Src),
			})
		}
	}
	return pairs, violations
}
