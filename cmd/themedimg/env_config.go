package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-themedimg/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // THEMEDIMG_CONFIG: config file name or path
	AssetsDir  string        // THEMEDIMG_ASSETS: catalog directory
	BasePath   string        // THEMEDIMG_BASE_PATH: public URL prefix of assets
	OutputDir  string        // THEMEDIMG_OUTPUT_DIR: build output directory
	Classes    string        // THEMEDIMG_CLASSES: class preset
	Workers    int           // THEMEDIMG_WORKERS: parallel render workers
	Timeout    time.Duration // THEMEDIMG_TIMEOUT: browser verification timeout
}

// knownEnvVars lists valid THEMEDIMG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"THEMEDIMG_CONFIG":     true,
	"THEMEDIMG_ASSETS":     true,
	"THEMEDIMG_BASE_PATH":  true,
	"THEMEDIMG_OUTPUT_DIR": true,
	"THEMEDIMG_CLASSES":    true,
	"THEMEDIMG_WORKERS":    true,
	"THEMEDIMG_TIMEOUT":    true,
	"THEMEDIMG_LOG_LEVEL":  true, // read by internal/log
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("THEMEDIMG_CONFIG"),
		AssetsDir:  getenv("THEMEDIMG_ASSETS"),
		BasePath:   getenv("THEMEDIMG_BASE_PATH"),
		OutputDir:  getenv("THEMEDIMG_OUTPUT_DIR"),
		Classes:    getenv("THEMEDIMG_CLASSES"),
	}

	if timeout := getenv("THEMEDIMG_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("THEMEDIMG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for every unrecognized THEMEDIMG_*
// variable, in sorted order.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "THEMEDIMG_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.AssetsDir != "" {
		cfg.Catalog.Dir = env.AssetsDir
	}
	if env.BasePath != "" {
		cfg.Catalog.BasePath = env.BasePath
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Classes != "" {
		cfg.Theme.Classes = env.Classes
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
}
