package themedimg

import (
	"fmt"
	"strings"
)

// ClassSet names the classes that tie each variant to its color-scheme
// condition. The stylesheet that gives them meaning is either generated by
// Stylesheet or supplied by the site (utility frameworks).
type ClassSet struct {
	Light string // applied to the light variant
	Dark  string // applied to the dark variant

	// External marks class sets whose CSS ships with the site.
	// Stylesheet returns "" for them.
	External bool
}

// Built-in class sets.
var (
	// DefaultClasses uses self-contained classes conditioned by the
	// stylesheet returned from Stylesheet.
	DefaultClasses = ClassSet{Light: "themed-light", Dark: "themed-dark"}

	// TailwindClasses uses Tailwind's dark variant with the "media" strategy.
	TailwindClasses = ClassSet{Light: "dark:hidden", Dark: "hidden dark:block", External: true}
)

// ClassSetByName returns the built-in class set called name
// ("default" or "tailwind").
func ClassSetByName(name string) (ClassSet, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultClasses, nil
	case "tailwind":
		return TailwindClasses, nil
	default:
		return ClassSet{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidClassSet, name)
	}
}

// Validate checks that both classes are set and distinct.
func (c ClassSet) Validate() error {
	light, dark := strings.TrimSpace(c.Light), strings.TrimSpace(c.Dark)
	if light == "" || dark == "" {
		return fmt.Errorf("%w: light and dark classes are required", ErrInvalidClassSet)
	}
	if light == dark {
		return fmt.Errorf("%w: light and dark classes must differ", ErrInvalidClassSet)
	}
	if !c.External && (!isClassName(light) || !isClassName(dark)) {
		return fmt.Errorf("%w: %q and %q must be plain class names (letters, digits, '-', '_')", ErrInvalidClassSet, light, dark)
	}
	return nil
}

// isClassName reports whether s can be used unescaped in a class selector.
func isClassName(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

// Stylesheet returns CSS hiding the dark variant by default and swapping
// the two under prefers-color-scheme: dark. Returns "" for external sets.
func (c ClassSet) Stylesheet() string {
	if c.External {
		return ""
	}
	return fmt.Sprintf(`.%[1]s { display: inline; }
.%[2]s { display: none; }
@media (prefers-color-scheme: dark) {
  .%[1]s { display: none; }
  .%[2]s { display: inline; }
}
`, c.Light, c.Dark)
}
