package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	userDirName   = ".meteors"
	localConfig   = "configs/meteors.yaml"
	userConfig    = "config.yaml"
	defaultScores = "scores.db"
)

// Load reads the configuration and validates it. Values missing from a file
// keep their embedded defaults.
// Search order: customPath -> ~/.meteors/config.yaml -> ./configs/meteors.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, cfg.Validate()
	}

	for _, candidate := range []string{userPath(userConfig), localConfig} {
		if candidate == "" {
			continue
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		next := Default()
		if err := yaml.Unmarshal(data, &next); err != nil {
			continue
		}
		next.Source = candidate
		return next, next.Validate()
	}

	return cfg, cfg.Validate()
}

// ScoresPath resolves the high score database location.
func (c Config) ScoresPath() string {
	if c.Scores.Path != "" {
		return c.Scores.Path
	}
	if p := userPath(defaultScores); p != "" {
		return p
	}
	return defaultScores
}

// userPath returns a path inside ~/.meteors, or empty if home is unavailable.
func userPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userDirName, filename)
}
