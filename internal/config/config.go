// Package config resolves NAAb's runtime configuration: cache location,
// module search path, GC trigger threshold, and color output, each
// layered CLI flags over environment variables over an optional
// ~/.naab/config.yaml file over hard-coded defaults (highest priority
// first). The YAML file gives every binary a place to point
// NAAB_CACHE_DIR/NAAB_MODULE_PATH/NAAB_GC_THRESHOLD/NAAB_COLOR at
// without retyping them on every invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/b-macker/NAAb-sub013/internal/gc"
)

// Config is NAAb's fully-resolved runtime configuration.
type Config struct {
	CacheDir    string   `yaml:"cache_dir"`
	ModulePath  []string `yaml:"module_path"`
	GCThreshold int      `yaml:"gc_threshold"`
	Color       bool     `yaml:"color"`
}

// fileConfig mirrors Config's shape for YAML decoding; ModulePath is a
// plain string in the file (colon-separated, matching NAAB_MODULE_PATH)
// rather than a YAML sequence, so editing the file feels like editing
// the environment variable it overrides.
type fileConfig struct {
	CacheDir    string `yaml:"cache_dir"`
	ModulePath  string `yaml:"module_path"`
	GCThreshold int    `yaml:"gc_threshold"`
	Color       *bool  `yaml:"color"`
}

// Overrides carries values explicitly set on the CLI, which always win
// over the file and the environment. A nil/zero field means "not set
// on the command line", not "set to the zero value".
type Overrides struct {
	CacheDir    string
	ModulePath  []string
	GCThreshold int
	Color       *bool
}

// Default returns NAAb's built-in configuration before any file,
// environment, or flag layer is applied.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		CacheDir:    filepath.Join(home, ".naab", "cache"),
		ModulePath:  []string{"."},
		GCThreshold: gc.DefaultThreshold,
		Color:       true,
	}
}

// configFilePath is ~/.naab/config.yaml, skipped entirely (not an
// error) when it does not exist or the home directory cannot be
// determined.
func configFilePath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, ".naab", "config.yaml"), true
}

// Load resolves a Config from, in increasing priority: Default(),
// ~/.naab/config.yaml, NAAB_* environment variables, then overrides.
func Load(overrides Overrides) (Config, error) {
	cfg := Default()

	if path, ok := configFilePath(); ok {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	applyOverrides(&cfg, overrides)

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if fc.CacheDir != "" {
		cfg.CacheDir = fc.CacheDir
	}
	if fc.ModulePath != "" {
		cfg.ModulePath = splitPath(fc.ModulePath)
	}
	if fc.GCThreshold > 0 {
		cfg.GCThreshold = fc.GCThreshold
	}
	if fc.Color != nil {
		cfg.Color = *fc.Color
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NAAB_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("NAAB_MODULE_PATH"); v != "" {
		cfg.ModulePath = splitPath(v)
	}
	if v := os.Getenv("NAAB_GC_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GCThreshold = n
		}
	}
	if v := os.Getenv("NAAB_COLOR"); v != "" {
		cfg.Color = v != "0" && !strings.EqualFold(v, "false")
	}
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.CacheDir != "" {
		cfg.CacheDir = o.CacheDir
	}
	if len(o.ModulePath) > 0 {
		cfg.ModulePath = o.ModulePath
	}
	if o.GCThreshold > 0 {
		cfg.GCThreshold = o.GCThreshold
	}
	if o.Color != nil {
		cfg.Color = *o.Color
	}
}

// splitPath splits a colon-separated NAAB_MODULE_PATH value
// (os.PathListSeparator on the host platform), dropping empty segments,
// so a user configures the module search path the same way they would
// $PATH.
func splitPath(v string) []string {
	parts := filepath.SplitList(v)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
