package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Catalog.Dir != DefaultCatalogDir {
		t.Errorf("Catalog.Dir = %q, want %q", cfg.Catalog.Dir, DefaultCatalogDir)
	}
	if cfg.Catalog.BasePath != DefaultBasePath {
		t.Errorf("Catalog.BasePath = %q, want %q", cfg.Catalog.BasePath, DefaultBasePath)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, DefaultOutputDir)
	}
	if cfg.Theme.Classes != ClassesDefault || !cfg.Theme.InjectStylesheet {
		t.Errorf("Theme = %+v, want default classes with stylesheet", cfg.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr != errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "tailwind preset",
			mutate: func(c *Config) { c.Theme.Classes = "Tailwind" },
		},
		{
			name: "custom classes",
			mutate: func(c *Config) {
				c.Theme.Classes = ClassesCustom
				c.Theme.LightClass = "only-light"
				c.Theme.DarkClass = "only-dark"
			},
		},
		{
			name: "custom classes missing dark",
			mutate: func(c *Config) {
				c.Theme.Classes = ClassesCustom
				c.Theme.LightClass = "a"
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "custom classes identical",
			mutate: func(c *Config) {
				c.Theme.Classes = ClassesCustom
				c.Theme.LightClass = "same"
				c.Theme.DarkClass = "same"
			},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown preset",
			mutate:  func(c *Config) { c.Theme.Classes = "bootstrap" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "class too long",
			mutate:  func(c *Config) { c.Theme.LightClass = strings.Repeat("x", MaxClassLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Render.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Render.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown highlight style",
			mutate:  func(c *Config) { c.Render.HighlightStyle = "no-such-style" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "empty highlight style",
			mutate: func(c *Config) { c.Render.HighlightStyle = "" },
		},
		{
			name:    "bad extension",
			mutate:  func(c *Config) { c.Catalog.Extensions = []string{"png", "../x"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "extension too long",
			mutate:  func(c *Config) { c.Catalog.Extensions = []string{"averyveryverylongext"} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "base path too long",
			mutate:  func(c *Config) { c.Catalog.BasePath = strings.Repeat("a", MaxURLLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_FilePath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "site.yaml", `
catalog:
  dir: content/images
  extensions: [png, svg]
theme:
  classes: tailwind
render:
  workers: 4
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Catalog.Dir != "content/images" {
		t.Errorf("Catalog.Dir = %q, want content/images", cfg.Catalog.Dir)
	}
	if len(cfg.Catalog.Extensions) != 2 {
		t.Errorf("Catalog.Extensions = %v, want 2 entries", cfg.Catalog.Extensions)
	}
	if cfg.Theme.Classes != ClassesTailwind {
		t.Errorf("Theme.Classes = %q, want tailwind", cfg.Theme.Classes)
	}
	if cfg.Render.Workers != 4 {
		t.Errorf("Render.Workers = %d, want 4", cfg.Render.Workers)
	}
	// Unset fields keep defaults
	if cfg.Catalog.BasePath != DefaultBasePath {
		t.Errorf("Catalog.BasePath = %q, want default %q", cfg.Catalog.BasePath, DefaultBasePath)
	}
	if cfg.Output.Dir != DefaultOutputDir {
		t.Errorf("Output.Dir = %q, want default %q", cfg.Output.Dir, DefaultOutputDir)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty name", func(t *testing.T) {
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		path := writeConfig(t, dir, "unknown.yaml", "catalog:\n  folder: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeConfig(t, dir, "invalid.yaml", "theme:\n  classes: bootstrap\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME lookup is Linux specific")
	}

	cwd := t.TempDir()
	xdg := t.TempDir()
	t.Chdir(cwd)
	t.Setenv("XDG_CONFIG_HOME", xdg)

	t.Run("current directory wins", func(t *testing.T) {
		writeConfig(t, cwd, "local.yml", "output:\n  dir: public\n")
		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Dir != "public" {
			t.Errorf("Output.Dir = %q, want public", cfg.Output.Dir)
		}
	})

	t.Run("user config directory", func(t *testing.T) {
		writeConfig(t, xdg, filepath.Join("go-themedimg", "shared.yaml"), "log:\n  level: debug\n")
		cfg, err := LoadConfig("shared")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
	})

	t.Run("not found lists searched paths", func(t *testing.T) {
		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		paths := SearchedPaths(err)
		if len(paths) != 4 {
			t.Fatalf("SearchedPaths() = %v, want 4 paths", paths)
		}
		if paths[0] != "absent.yaml" || !strings.HasSuffix(paths[3], filepath.Join("go-themedimg", "absent.yml")) {
			t.Errorf("SearchedPaths() = %v", paths)
		}
	})
}

func TestSearchedPaths_OtherErrors(t *testing.T) {
	if got := SearchedPaths(errors.New("boom")); got != nil {
		t.Errorf("SearchedPaths() = %v, want nil", got)
	}
}
