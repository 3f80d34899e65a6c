// ABOUTME: Configuration management for contentai with YAML config loading.
// ABOUTME: Handles GitHub sync settings, data and log options, .env files, env overrides, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvGitHubToken = "CONTENTAI_GITHUB_TOKEN"
	EnvDataDir     = "CONTENTAI_DATA_DIR"
	EnvLogLevel    = "CONTENTAI_LOG_LEVEL"
	EnvFile        = "CONTENTAI_ENV_FILE"
)

// Config stores contentai configuration loaded from ~/.config/contentai/config.yaml.
type Config struct {
	GitHub  GitHubConfig `yaml:"github"`
	DataDir string       `yaml:"data_dir,omitempty"`
	Log     LogConfig    `yaml:"log,omitempty"`

	// overrides maps an env variable name to the file value it replaced.
	overrides map[string]envOverride
}

type envOverride struct {
	file string
	env  string
}

// GitHubConfig holds the personal access token and sync destination.
type GitHubConfig struct {
	Token         string `yaml:"token"`
	Repo          string `yaml:"repo"`
	Branch        string `yaml:"branch,omitempty"`
	Path          string `yaml:"path,omitempty"`
	APIURL        string `yaml:"api_url,omitempty"`
	AutoSync      bool   `yaml:"auto_sync"`
	SyncFrequency string `yaml:"sync_frequency,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// HasGitHub returns true if a token is configured.
func (c *Config) HasGitHub() bool {
	return c.GitHub.Token != ""
}

// HasSyncTarget returns true if both a token and a repository are configured.
func (c *Config) HasSyncTarget() bool {
	return c.HasGitHub() && c.GitHub.Repo != ""
}

// GetBranch returns the configured branch, defaulting to main.
func (c *Config) GetBranch() string {
	if c.GitHub.Branch != "" {
		return c.GitHub.Branch
	}
	return "main"
}

// GetSyncFrequency returns the configured frequency, defaulting to daily.
func (c *Config) GetSyncFrequency() string {
	if c.GitHub.SyncFrequency != "" {
		return c.GitHub.SyncFrequency
	}
	return "daily"
}

// GetDataDir returns the local storage directory.
func (c *Config) GetDataDir() (string, error) {
	if c.DataDir != "" {
		return ExpandPath(c.DataDir)
	}
	return DefaultDataDir()
}

// DefaultDataDir returns $XDG_DATA_HOME/contentai, defaulting to ~/.local/share/contentai.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "contentai"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "contentai", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// MaskToken hides all but the last four characters of a token.
func MaskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", 8) + token[len(token)-4:]
}

// applyEnv overlays environment overrides onto c.
func (c *Config) applyEnv() {
	c.override(EnvGitHubToken, &c.GitHub.Token)
	c.override(EnvDataDir, &c.DataDir)
	c.override(EnvLogLevel, &c.Log.Level)
}

func (c *Config) override(name string, field *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if c.overrides == nil {
		c.overrides = make(map[string]envOverride)
	}
	c.overrides[name] = envOverride{file: *field, env: v}
	*field = v
}

// persisted returns the values Save writes: fields still holding an env
// override go back to what the file had.
func (c *Config) persisted() Config {
	out := *c
	out.overrides = nil
	restore := func(name string, field *string) {
		if o, ok := c.overrides[name]; ok && *field == o.env {
			*field = o.file
		}
	}
	restore(EnvGitHubToken, &out.GitHub.Token)
	restore(EnvDataDir, &out.DataDir)
	restore(EnvLogLevel, &out.Log.Level)
	return out
}

// loadEnvFiles loads dotenv files without overriding variables already set.
// CONTENTAI_ENV_FILE, when set, is the only file read. Otherwise .env in the
// working directory is read first, then .env next to the config file.
func loadEnvFiles(configDir string) error {
	if envFile := os.Getenv(EnvFile); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	for _, candidate := range []string{".env", filepath.Join(configDir, ".env")} {
		if err := godotenv.Load(candidate); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", candidate, err)
		}
	}
	return nil
}

// Load reads config from disk, loads any .env files, and applies env overrides.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if err := loadEnvFiles(filepath.Dir(path)); err != nil {
		return nil, err
	}
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads only the config file, without .env files or env overrides.
func LoadFile() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return readFile(path)
}

func readFile(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// Save writes config to disk. Values that only came from the environment are not persisted.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c.persisted())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
