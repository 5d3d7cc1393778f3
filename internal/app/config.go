package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ClaudeDir    string `yaml:"claude_dir"`
	Year         int    `yaml:"year"`
	DisplayName  string `yaml:"display_name"`
	ShareBaseURL string `yaml:"share_base_url"`
	CacheDir     string `yaml:"cache_dir"`
	NoCache      bool   `yaml:"no_cache"`
}

const defaultShareBaseURL = "https://claude-wrapped.dev/wrapped"

func DefaultConfig() Config {
	return Config{
		ShareBaseURL: defaultShareBaseURL,
		CacheDir:     defaultCacheDir(),
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.ShareBaseURL == "" {
		cfg.ShareBaseURL = defaultShareBaseURL
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}
	if cfg.Year < 0 {
		cfg.Year = 0
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "cwrap", "config.yml")
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cwrap")
	}
	return filepath.Join(base, "cwrap")
}

// TargetYear resolves the year to analyze: explicit config wins, otherwise
// the current year.
func (c Config) TargetYear() int {
	if c.Year > 0 {
		return c.Year
	}
	return time.Now().Year()
}
