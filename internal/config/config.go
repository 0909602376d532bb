package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds tool settings. The refresh interval doubles as the daemon's
// cycle length and the statusline's max acceptable cache age, so the two can
// never disagree on what counts as fresh.
type Config struct {
	RefreshIntervalSeconds int `json:"refresh_interval_seconds"`
}

func DefaultConfig() Config {
	return Config{
		RefreshIntervalSeconds: 300,
	}
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "ccusage")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccusage")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

// ClaudeDir is where Claude Code keeps its credentials and where the usage
// cache and history live, so the statusline hook finds everything in one place.
func ClaudeDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude")
}

func CredentialsPath() string {
	return filepath.Join(ClaudeDir(), ".credentials.json")
}

func UsagePath() string {
	return filepath.Join(ClaudeDir(), "usage-limits.json")
}

func HistoryPath() string {
	return filepath.Join(ClaudeDir(), "usage-history.db")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.RefreshIntervalSeconds <= 0 {
		cfg.RefreshIntervalSeconds = DefaultConfig().RefreshIntervalSeconds
	}

	return cfg, nil
}
