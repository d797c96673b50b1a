package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-themedimg/internal/fileutil"
	"github.com/alnah/go-themedimg/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxURLLength       = 2048 // Browser limit
	MaxClassLength     = 200  // Space separated class list
	MaxExtensionLength = 10   // "jpeg", "webp"
	MaxStyleNameLength = 50   // chroma style name
	MaxWorkers         = 64
)

// Class presets for theme.classes.
const (
	ClassesDefault  = "default"
	ClassesTailwind = "tailwind"
	ClassesCustom   = "custom"
)

// Defaults applied by DefaultConfig.
const (
	DefaultCatalogDir     = "src/assets"
	DefaultBasePath       = "/_assets"
	DefaultOutputDir      = "dist"
	DefaultHighlightStyle = "github"
	DefaultLogLevel       = "info"
)

// Config holds all configuration for a site build.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Output  OutputConfig  `yaml:"output"`
	Theme   ThemeConfig   `yaml:"theme"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

// CatalogConfig defines where images are found and how they are published.
type CatalogConfig struct {
	Dir           string   `yaml:"dir"`           // Directory scanned for images
	Extensions    []string `yaml:"extensions"`    // Empty = png, jpg, jpeg, gif, webp, svg
	BasePath      string   `yaml:"basePath"`      // URL prefix of emitted assets
	RecompressPNG bool     `yaml:"recompressPNG"` // Lossless PNG recompression
}

// OutputConfig defines the build output location.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Pages land here, assets under {dir}/{basePath}
}

// ThemeConfig defines how the two variants are conditioned on color scheme.
type ThemeConfig struct {
	Classes          string `yaml:"classes"`          // "default", "tailwind", "custom"
	LightClass       string `yaml:"lightClass"`       // Required when classes = custom
	DarkClass        string `yaml:"darkClass"`        // Required when classes = custom
	InjectStylesheet bool   `yaml:"injectStylesheet"` // Embed the media-query CSS in rendered pages
}

// RenderConfig defines document rendering options.
type RenderConfig struct {
	Workers        int    `yaml:"workers"`        // 0 = auto
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
}

// LogConfig defines logging options.
type LogConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{Dir: DefaultCatalogDir, BasePath: DefaultBasePath},
		Output:  OutputConfig{Dir: DefaultOutputDir},
		Theme:   ThemeConfig{Classes: ClassesDefault, InjectStylesheet: true},
		Render:  RenderConfig{HighlightStyle: DefaultHighlightStyle},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Validate checks lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("catalog.dir", c.Catalog.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("catalog.basePath", c.Catalog.BasePath, MaxURLLength); err != nil {
		return err
	}
	for i, ext := range c.Catalog.Extensions {
		field := fmt.Sprintf("catalog.extensions[%d]", i)
		if err := validateFieldLength(field, ext, MaxExtensionLength); err != nil {
			return err
		}
		if err := fileutil.ValidateExtension(strings.TrimPrefix(ext, ".")); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
		}
	}

	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := c.Theme.validate(); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}
	if err := validateFieldLength("render.highlightStyle", c.Render.HighlightStyle, MaxStyleNameLength); err != nil {
		return err
	}
	if c.Render.HighlightStyle != "" {
		if _, ok := styles.Registry[strings.ToLower(c.Render.HighlightStyle)]; !ok {
			return fmt.Errorf("%w: render.highlightStyle: unknown style %q", ErrInvalidValue, c.Render.HighlightStyle)
		}
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "error", "disabled":
			// valid
		default:
			return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, error or disabled)", ErrInvalidValue, c.Log.Level)
		}
	}

	return nil
}

func (t ThemeConfig) validate() error {
	if err := validateFieldLength("theme.lightClass", t.LightClass, MaxClassLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme.darkClass", t.DarkClass, MaxClassLength); err != nil {
		return err
	}

	switch strings.ToLower(t.Classes) {
	case "", ClassesDefault, ClassesTailwind:
		return nil
	case ClassesCustom:
		if strings.TrimSpace(t.LightClass) == "" || strings.TrimSpace(t.DarkClass) == "" {
			return fmt.Errorf("%w: theme.lightClass and theme.darkClass are required when theme.classes is custom", ErrInvalidValue)
		}
		if strings.TrimSpace(t.LightClass) == strings.TrimSpace(t.DarkClass) {
			return fmt.Errorf("%w: theme.lightClass and theme.darkClass must differ", ErrInvalidValue)
		}
		return nil
	default:
		return fmt.Errorf("%w: theme.classes: %q (must be default, tailwind, or custom)", ErrInvalidValue, t.Classes)
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-themedimg/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-themedimg", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchedPaths extracts the paths listed in an ErrConfigNotFound message.
// Used by the CLI to build hints.
func SearchedPaths(err error) []string {
	if !errors.Is(err, ErrConfigNotFound) {
		return nil
	}
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
