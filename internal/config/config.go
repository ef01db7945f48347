package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "video-estados"
	configFileName = "config.yaml"
	logFileName    = "estados.log"

	defaultFFmpeg = "ffmpeg"
	defaultVainfo = "vainfo"
	defaultOpener = "xdg-open"
)

// Config holds the optional user configuration.
// Only tool locations and desktop behaviour live here; the encoding
// profile is fixed in the transcode package.
type Config struct {
	Tools          ToolsConfig `yaml:"tools"`            // External executables
	OpenOnComplete *bool       `yaml:"open_on_complete"` // Open destination after a batch
	LogFile        string      `yaml:"log_file"`         // Log file path
}

// ToolsConfig holds paths of the external tools
type ToolsConfig struct {
	FFmpeg string `yaml:"ffmpeg"` // Engine executable
	Vainfo string `yaml:"vainfo"` // Accelerator info tool
	Opener string `yaml:"opener"` // Command used to open the destination folder
}

// FFmpegPath returns the engine executable, "ffmpeg" by default
func (c *Config) FFmpegPath() string {
	if c.Tools.FFmpeg != "" {
		return c.Tools.FFmpeg
	}
	return defaultFFmpeg
}

// VainfoPath returns the accelerator info tool, "vainfo" by default
func (c *Config) VainfoPath() string {
	if c.Tools.Vainfo != "" {
		return c.Tools.Vainfo
	}
	return defaultVainfo
}

// OpenerCommand returns the folder opener command, "xdg-open" by default
func (c *Config) OpenerCommand() string {
	if c.Tools.Opener != "" {
		return c.Tools.Opener
	}
	return defaultOpener
}

// ShouldOpenOnComplete reports whether the destination is opened after a
// batch. Defaults to true.
func (c *Config) ShouldOpenOnComplete() bool {
	if c.OpenOnComplete == nil {
		return true
	}
	return *c.OpenOnComplete
}

// LogPath returns the log file path.
// Defaults to $XDG_STATE_HOME/video-estados/estados.log, falling back to
// ~/.local/state when XDG_STATE_HOME is unset.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, appDirName, logFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName, logFileName)
	}
	return filepath.Join(home, ".local", "state", appDirName, logFileName)
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// DefaultPath returns the default config location:
// $XDG_CONFIG_HOME/video-estados/config.yaml, or ~/.config/video-estados/config.yaml
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, configFileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appDirName, configFileName), nil
}

// LoadDefault loads config from the default location.
// A missing file is not an error: every setting has a default.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}
