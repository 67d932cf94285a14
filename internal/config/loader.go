// Package config loads ferro configuration from YAML files.
package config

import (
	"os"
	"path/filepath"

	"github.com/ferromon/ferro/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the per-directory config file name.
	ConfigFileName = ".ferro.yaml"
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/ferro"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Default returns a config populated with defaults.
func Default() *Config {
	return &Config{
		TickMS:      DefaultTickMS,
		ScanTargets: defaultScanTargets(),
	}
}

// defaultScanTargets mirrors the built-in disk-dive targets: /var, $HOME, /.
func defaultScanTargets() []string {
	targets := []string{"/var"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		targets = append(targets, home)
	}
	return append(targets, "/")
}

// Load reads config from the specified path, or from the search path when
// path is empty. A missing config is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	found, err := Find(path)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(found)
	v.SetDefault("tick_ms", DefaultTickMS)
	v.SetDefault("scan_targets", defaultScanTargets())

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Config file has unexpected structure",
			"Compare against the output of 'ferro init'")
	}
	cfg.Path = found

	if len(cfg.ScanTargets) == 0 {
		cfg.ScanTargets = defaultScanTargets()
	}

	return cfg, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .ferro.yaml in current directory
// 3. ~/.config/ferro/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, ConfigFileName)
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(global); err == nil {
			return global, nil
		}
	}

	return "", nil
}
