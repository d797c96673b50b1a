package themedimg

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const logoPattern = "src/assets/**/*.{gif,jpeg,jpg,png,svg,webp}"

func newTestResolver(t *testing.T, cat Catalog, opts ...Option) *Resolver {
	t.Helper()

	r, err := NewResolver(cat, opts...)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return r
}

func TestResolve_CompanyLogoScenario(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, newLogoCatalog(t))

	f, err := r.Resolve("logo-light.png", "logo-dark.png", "Company logo")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	light, dark := f.Light(), f.Dark()

	if light.Source.ID != "logo-light.png" || dark.Source.ID != "logo-dark.png" {
		t.Errorf("sources = %q, %q, want logo-light.png, logo-dark.png", light.Source.ID, dark.Source.ID)
	}
	if light.Alt != "Company logo" || dark.Alt != "Company logo" {
		t.Errorf("alts = %q, %q, want both %q", light.Alt, dark.Alt, "Company logo")
	}
	if diff := cmp.Diff(Visibility{Light: true, Dark: false}, light.Visibility); diff != "" {
		t.Errorf("light visibility mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Visibility{Light: false, Dark: true}, dark.Visibility); diff != "" {
		t.Errorf("dark visibility mismatch (-want +got):\n%s", diff)
	}
	if light.Variant != VariantLight || dark.Variant != VariantDark {
		t.Errorf("variants = %q, %q", light.Variant, dark.Variant)
	}
	if light.Class != DefaultClasses.Light || dark.Class != DefaultClasses.Dark {
		t.Errorf("classes = %q, %q, want %q, %q", light.Class, dark.Class, DefaultClasses.Light, DefaultClasses.Dark)
	}

	srcPattern := regexp.MustCompile(`^/_assets/logo-light\.[0-9a-f]{8}\.png$`)
	if !srcPattern.MatchString(light.Source.Src) {
		t.Errorf("light Src = %q, want match %s", light.Source.Src, srcPattern)
	}
	if light.Source.Width != 120 || light.Source.Height != 40 {
		t.Errorf("light size = %dx%d, want 120x40", light.Source.Width, light.Source.Height)
	}
}

func TestResolve_MissingScenario(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, newLogoCatalog(t))

	f, err := r.Resolve("missing.png", "logo-dark.png", "x")
	if f != nil {
		t.Errorf("Resolve() fragment = %+v, want nil", f)
	}

	want := &MissingAssetError{ID: "missing.png", SearchPattern: logoPattern}
	var got *MissingAssetError
	if !errors.As(err, &got) {
		t.Fatalf("Resolve() error = %v, want *MissingAssetError", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MissingAssetError mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, ErrMissingAsset) {
		t.Error("errors.Is(err, ErrMissingAsset) = false, want true")
	}
}

func TestResolve_AllCatalogPairsAreComplementary(t *testing.T) {
	t.Parallel()

	cat := newLogoCatalog(t)
	r := newTestResolver(t, cat)
	ids := cat.IDs()

	for _, lightID := range ids {
		for _, darkID := range ids {
			t.Run(lightID+"+"+darkID, func(t *testing.T) {
				t.Parallel()

				f, err := r.Resolve(lightID, darkID, "pair")
				if err != nil {
					t.Fatalf("Resolve() error = %v", err)
				}

				light, dark := f.Light().Visibility, f.Dark().Visibility
				if light.Light == dark.Light || light.Dark == dark.Dark {
					t.Errorf("visibilities not complementary: light=%+v dark=%+v", light, dark)
				}
				if !light.Light || !dark.Dark {
					t.Errorf("wrong element visible: light=%+v dark=%+v", light, dark)
				}
				if f.Light().Source.ID != lightID || f.Dark().Source.ID != darkID {
					t.Errorf("sources = %q, %q", f.Light().Source.ID, f.Dark().Source.ID)
				}
			})
		}
	}
}

func TestResolve_MissingLightWins(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lightID string
		darkID  string
	}{
		{name: "dark valid", lightID: "missing.png", darkID: "logo-dark.png"},
		{name: "dark missing too", lightID: "missing.png", darkID: "also-missing.png"},
		{name: "empty light", lightID: "", darkID: "logo-dark.png"},
		{name: "traversal light", lightID: "../logo-light.png", darkID: "logo-dark.png"},
		{name: "case differs", lightID: "Logo-Light.png", darkID: "logo-dark.png"},
	}

	r := newTestResolver(t, newLogoCatalog(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Resolve(tt.lightID, tt.darkID, "x")

			var missing *MissingAssetError
			if !errors.As(err, &missing) {
				t.Fatalf("Resolve() error = %v, want *MissingAssetError", err)
			}
			if missing.ID != tt.lightID {
				t.Errorf("MissingAssetError.ID = %q, want %q", missing.ID, tt.lightID)
			}
		})
	}
}

func TestResolve_MissingDark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lightID string
		darkID  string
	}{
		{name: "absent", lightID: "logo-light.png", darkID: "logo-dark.jpg"},
		{name: "empty", lightID: "logo-light.png", darkID: ""},
		{name: "directory", lightID: "logo-light.png", darkID: "diagrams"},
	}

	r := newTestResolver(t, newLogoCatalog(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Resolve(tt.lightID, tt.darkID, "x")

			var missing *MissingAssetError
			if !errors.As(err, &missing) {
				t.Fatalf("Resolve() error = %v, want *MissingAssetError", err)
			}
			if missing.ID != tt.darkID {
				t.Errorf("MissingAssetError.ID = %q, want %q", missing.ID, tt.darkID)
			}
			if missing.SearchPattern != logoPattern {
				t.Errorf("SearchPattern = %q, want %q", missing.SearchPattern, logoPattern)
			}
		})
	}
}

func TestResolve_MissingDoesNotMaterialize(t *testing.T) {
	t.Parallel()

	cat := newFakeCatalog("logo-light.png")
	r := newTestResolver(t, cat)

	if _, err := r.Resolve("logo-light.png", "missing.png", "x"); !errors.Is(err, ErrMissingAsset) {
		t.Fatalf("Resolve() error = %v, want ErrMissingAsset", err)
	}
	if n := cat.materializeCalls(); n != 0 {
		t.Errorf("Materialize called %d times, want 0", n)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, newLogoCatalog(t, WithOutputDir(t.TempDir())))

	first, err := r.Resolve("logo-light.png", "logo-dark.png", "Company logo")
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := r.Resolve("logo-light.png", "logo-dark.png", "Company logo")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("fragments differ between calls (-first +second):\n%s", diff)
	}
}

func TestResolve_AltTextPropagation(t *testing.T) {
	t.Parallel()

	alts := []string{
		"Company logo",
		"",
		"  padded  ",
		`quotes "and" <tags> & ampersands`,
		"Logo de l'entreprise",
		"ロゴ",
	}

	r := newTestResolver(t, newLogoCatalog(t))

	for _, alt := range alts {
		t.Run(fmt.Sprintf("%q", alt), func(t *testing.T) {
			t.Parallel()

			f, err := r.Resolve("logo-light.png", "logo-dark.png", alt)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if f.Light().Alt != alt || f.Dark().Alt != alt {
				t.Errorf("alts = %q, %q, want both %q", f.Light().Alt, f.Dark().Alt, alt)
			}
		})
	}
}

func TestResolve_SameIDForBothVariants(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, newLogoCatalog(t))

	f, err := r.Resolve("diagrams/flow.svg", "diagrams/flow.svg", "Flow")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if f.Light().Source != f.Dark().Source {
		t.Errorf("sources differ for the same id: %+v vs %+v", f.Light().Source, f.Dark().Source)
	}
}

func TestResolve_MaterializeErrorPropagates(t *testing.T) {
	t.Parallel()

	cat := newFakeCatalog("logo-light.png", "broken.png")
	cat.failing["broken.png"] = fmt.Errorf("%w: bad header", ErrAssetDecode)
	r := newTestResolver(t, cat)

	_, err := r.Resolve("logo-light.png", "broken.png", "x")
	if !errors.Is(err, ErrAssetDecode) {
		t.Errorf("Resolve() error = %v, want ErrAssetDecode", err)
	}
	if errors.Is(err, ErrMissingAsset) {
		t.Error("decode failure must not be reported as a missing asset")
	}
}

func TestResolve_Concurrent(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, newLogoCatalog(t, WithOutputDir(t.TempDir())))

	const workers = 16
	results := make([]*Fragment, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = r.Resolve("logo-light.png", "logo-dark.png", "Company logo")
		}()
	}
	wg.Wait()

	for i := range workers {
		if errs[i] != nil {
			t.Fatalf("Resolve() #%d error = %v", i, errs[i])
		}
		if diff := cmp.Diff(results[0], results[i]); diff != "" {
			t.Errorf("fragment #%d differs (-0 +%d):\n%s", i, i, diff)
		}
	}
}

func TestResolve_TailwindClasses(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, newLogoCatalog(t), WithClasses(TailwindClasses))

	f, err := r.Resolve("logo-light.png", "logo-dark.png", "x")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if f.Light().Class != "dark:hidden" || f.Dark().Class != "hidden dark:block" {
		t.Errorf("classes = %q, %q", f.Light().Class, f.Dark().Class)
	}
}

func TestNewResolver_Errors(t *testing.T) {
	t.Parallel()

	t.Run("nil catalog", func(t *testing.T) {
		t.Parallel()

		_, err := NewResolver(nil)
		if !errors.Is(err, ErrNilCatalog) {
			t.Errorf("NewResolver(nil) error = %v, want ErrNilCatalog", err)
		}
		if errors.Is(err, ErrInvalidCatalogDir) {
			t.Error("NewResolver(nil) error matches ErrInvalidCatalogDir")
		}
	})

	t.Run("invalid classes", func(t *testing.T) {
		t.Parallel()

		_, err := NewResolver(newFakeCatalog(), WithClasses(ClassSet{Light: "same", Dark: "same"}))
		if !errors.Is(err, ErrInvalidClassSet) {
			t.Errorf("NewResolver() error = %v, want ErrInvalidClassSet", err)
		}
	})
}

func TestMissingAssetError(t *testing.T) {
	t.Parallel()

	err := &MissingAssetError{ID: "missing.png", SearchPattern: logoPattern}

	want := `missing asset: "missing.png" not found in ` + logoPattern
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrMissingAsset) {
		t.Error("errors.Is(err, ErrMissingAsset) = false")
	}
	if errors.Is(err, ErrAssetDecode) {
		t.Error("errors.Is(err, ErrAssetDecode) = true, want false")
	}

	wrapped := fmt.Errorf("page index.md: %w", err)
	var got *MissingAssetError
	if !errors.As(wrapped, &got) || got.ID != "missing.png" {
		t.Errorf("errors.As through wrapping = %+v", got)
	}
}
