// Package config holds macbox's configuration: the per-run artifact
// Options, the on-disk Layout, and the Settings loaded through viper from
// defaults, an optional YAML file, MACBOX_* environment variables, and
// bound command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys shared by viper, the config file, and flags.
const (
	KeyRootDir              = "root-dir"
	KeyInstallerSearchPaths = "installer-search-paths"
	KeyVagrantCommand       = "vagrant-command"
	KeyLogLevel             = "log-level"
	KeyLogFormat            = "log-format"

	// EnvPrefix prefixes environment overrides, e.g. MACBOX_ROOT_DIR.
	EnvPrefix = "MACBOX"
)

// DefaultInstallerSearchPaths lists the installer apps tried, in order,
// when no installer path is given.
var DefaultInstallerSearchPaths = []string{
	"/Applications/Install macOS Sierra.app",
	"/Applications/Install OS X El Capitan.app",
	"/Applications/Install OS X Yosemite.app",
}

// Settings holds the process-wide configuration.
type Settings struct {
	RootDir              string   `mapstructure:"root-dir"`
	InstallerSearchPaths []string `mapstructure:"installer-search-paths"`
	VagrantCommand       string   `mapstructure:"vagrant-command"`
	LogLevel             string   `mapstructure:"log-level"`
	LogFormat            string   `mapstructure:"log-format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyRootDir, "")
	v.SetDefault(KeyInstallerSearchPaths, DefaultInstallerSearchPaths)
	v.SetDefault(KeyVagrantCommand, "vagrant")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// Load reads settings from v. If configFile is set it must exist; otherwise
// macbox.yaml is looked up in the working directory and then in
// $HOME/.config/macbox, and skipped when absent.
//
// An empty root-dir resolves to the directory holding the running binary.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else if path := findConfigFile(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if s.RootDir == "" {
		root, err := executableDir()
		if err != nil {
			return nil, err
		}
		s.RootDir = root
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	if s.RootDir == "" {
		return fmt.Errorf("%s cannot be empty", KeyRootDir)
	}
	if s.VagrantCommand == "" {
		return fmt.Errorf("%s cannot be empty", KeyVagrantCommand)
	}
	for i, p := range s.InstallerSearchPaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%s[%d] cannot be empty", KeyInstallerSearchPaths, i)
		}
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid %s %q (valid: text, json)", KeyLogFormat, s.LogFormat)
	}
	return nil
}

// Layout returns the directory layout below RootDir.
func (s *Settings) Layout() Layout {
	return NewLayout(s.RootDir)
}

// ConfigFileName is the config file looked up when none is given.
const ConfigFileName = "macbox.yaml"

// findConfigFile returns the first existing ./macbox.yaml or
// $HOME/.config/macbox/macbox.yaml, or "" if neither exists. Only the exact
// file name is accepted: the macbox binary itself usually sits in the
// working directory.
func findConfigFile() string {
	candidates := []string{ConfigFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "macbox", ConfigFileName))
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
