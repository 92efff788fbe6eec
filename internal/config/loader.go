package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Loader loads configuration from TOML files.
type Loader struct {
	startDir  string // directory the upward search for .scopa starts from
	globalDir string // global config directory (e.g., ~/.config/scopa)
}

// NewLoader creates a Loader rooted at the current working directory.
func NewLoader() *Loader {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Loader{
		startDir:  wd,
		globalDir: defaultGlobalDir(),
	}
}

// NewLoaderWithDirs creates a Loader with explicit directories.
// This is useful for testing.
func NewLoaderWithDirs(startDir, globalDir string) *Loader {
	return &Loader{
		startDir:  startDir,
		globalDir: globalDir,
	}
}

// defaultGlobalDir returns the global config directory.
func defaultGlobalDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scopa")
}

// GlobalDir returns the global configuration directory, honoring
// XDG_CONFIG_HOME. The directory may not exist yet.
func GlobalDir() string {
	return defaultGlobalDir()
}

// FindDir walks up from startDir looking for a .scopa directory and returns
// its path. The second return value reports whether one was found.
func FindDir(startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Load returns the merged configuration: defaults, overridden by the global
// file, overridden by the nearest local file, overridden by environment.
func (l *Loader) Load() (*Config, error) {
	base := Default()

	if l.globalDir != "" {
		global, err := loadFile(filepath.Join(l.globalDir, FileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if global != nil {
			base = mergeConfigs(base, global)
		}
	}

	if scopaDir, ok := FindDir(l.startDir); ok {
		local, err := loadFile(filepath.Join(scopaDir, FileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if local != nil {
			base = mergeConfigs(base, local)
		}
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		base.Gemini.APIKey = key
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// loadFile loads a configuration from a file.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays non-empty override fields onto base.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Gemini.APIKey != "" {
		result.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.Model != "" {
		result.Gemini.Model = override.Gemini.Model
	}
	if override.Gemini.PlanModel != "" {
		result.Gemini.PlanModel = override.Gemini.PlanModel
	}
	if override.Gemini.BaseURL != "" {
		result.Gemini.BaseURL = override.Gemini.BaseURL
	}
	if override.Chat.Termination != "" {
		result.Chat.Termination = override.Chat.Termination
	}
	if override.Chat.HistoryFile != "" {
		result.Chat.HistoryFile = override.Chat.HistoryFile
	}
	if override.Serve.Addr != "" {
		result.Serve.Addr = override.Serve.Addr
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}

	return &result
}
