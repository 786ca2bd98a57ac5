package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/k1LoW/expand"
)

const appName = "slider"

const (
	DefaultFPS    = 30
	DefaultListen = "127.0.0.1:8080"
)

var (
	homePath       string
	configHomePath string
	dataHomePath   string
	stateHomePath  string
)

type Config struct {
	// default theme file
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`
	// command templates overriding the built-in interpreter of a supported language
	Interpreters map[string]string `yaml:"interpreters,omitempty" json:"interpreters,omitempty"`
	// timeout for running code blocks, e.g. "30s". Empty means no timeout
	CodeTimeout string `yaml:"codeTimeout,omitempty" json:"codeTimeout,omitempty"`
	// presenter frame rate
	FPS int `yaml:"fps,omitempty" json:"fps,omitempty"`
	// presenter listen address
	Listen string `yaml:"listen,omitempty" json:"listen,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}
}

// Load loads the configuration from the config file.
// It searches for config files in the following order:
// 1. $XDG_CONFIG_HOME/slider/config-{profile}.yml
// 2. $XDG_CONFIG_HOME/slider/config.yml
// If no config file is found, it returns a Config with defaults applied.
func Load(profile string) (*Config, error) {
	var configBasePaths []string
	if profile != "" {
		configBasePaths = append(configBasePaths, filepath.Join(configPath(), fmt.Sprintf("config-%s", profile)))
	}
	configBasePaths = append(configBasePaths, filepath.Join(configPath(), "config"))
	cfg := &Config{}
	for _, basePath := range configBasePaths {
		for _, ext := range []string{".yml", ".yaml"} {
			p := basePath + ext
			b, err := os.ReadFile(p)
			if err != nil {
				continue
			}
			if err := yaml.Unmarshal(expand.ExpandenvYAMLBytes(b), cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config %s: %w", p, err)
			}
			cfg.setDefaults()
			return cfg, nil
		}
	}
	// If no config file is found, return the defaults
	cfg.setDefaults()
	return cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
}

// CodeTimeoutDuration returns the parsed code timeout. Zero means no timeout.
func (cfg *Config) CodeTimeoutDuration() (time.Duration, error) {
	if cfg == nil || cfg.CodeTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.CodeTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid codeTimeout %q: %w", cfg.CodeTimeout, err)
	}
	return d, nil
}

// ConfigPath returns the path to the configuration directory.
func ConfigPath() string {
	return configPath()
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, appName)
	} else {
		configHomePath = filepath.Join(homePath, ".config", appName)
	}
	return configHomePath
}

// DataHomePath returns the path to the data home directory.
func DataHomePath() string {
	if dataHomePath != "" {
		return dataHomePath
	}
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		dataHomePath = filepath.Join(v, appName)
	} else {
		dataHomePath = filepath.Join(homePath, ".local", "share", appName)
	}
	return dataHomePath
}

func StateHomePath() string {
	if stateHomePath != "" {
		return stateHomePath
	}
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		stateHomePath = filepath.Join(v, appName)
	} else {
		stateHomePath = filepath.Join(homePath, ".local", "state", appName)
	}
	return stateHomePath
}
