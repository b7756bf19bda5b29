// Package config loads the optional per-user YAML configuration. A
// missing file is not an error: defaults apply, and individually
// malformed presets are dropped instead of failing the whole load.
package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ovalbit/eggtimer/internal/validate"
)

// DefaultPath is the per-user config location.
const DefaultPath = "~/.config/eggtimer/config.yaml"

// DefaultPresets returns the quick-select durations offered when no
// config file overrides them.
func DefaultPresets() []string {
	return []string{"00:15", "00:30", "00:45", "01:00"}
}

// File is the on-disk YAML shape.
type File struct {
	Presets []string `yaml:"presets"`
	Sound   *bool    `yaml:"sound"`
}

// Config is the resolved runtime configuration.
type Config struct {
	Presets []string
	Sound   bool
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Presets: DefaultPresets(), Sound: true}
}

// Load reads the config file at path, falling back to defaults when it
// is absent. Presets failing the clock_hhmm validation are dropped; if
// none survive, the defaults are restored.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := expandTilde(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, err
	}

	if f.Sound != nil {
		cfg.Sound = *f.Sound
	}
	if len(f.Presets) == 0 {
		return cfg, nil
	}
	presets := make([]string, 0, len(f.Presets))
	for _, p := range f.Presets {
		if err := validate.Var(p, "clock_hhmm"); err != nil {
			logrus.Warnf("Dropping invalid preset %q from config.", p)
			continue
		}
		presets = append(presets, p)
	}
	if len(presets) == 0 {
		presets = DefaultPresets()
	}
	cfg.Presets = presets
	return cfg, nil
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
