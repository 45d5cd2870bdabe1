// Package config loads the command line tool's settings.
//
// Settings come from a YAML file, then from RIG_RETARGET_* environment
// variables, then from command line flags, each layer overriding the one
// before. Unset fields get defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file read when none is given and it exists.
const DefaultFile = "rig-retarget.yaml"

// Environment variables read by ApplyEnv.
const (
	EnvScene   = "RIG_RETARGET_SCENE"
	EnvStateDB = "RIG_RETARGET_STATE_DB"
	EnvLogFile = "RIG_RETARGET_LOG_FILE"
	EnvBoneMap = "RIG_RETARGET_BONE_MAP"
)

// Config holds the tool settings.
type Config struct {
	// Scene is the scene file the commands operate on.
	Scene string `yaml:"scene"`
	// SceneName keys the session in the state database. Empty means the
	// name stored in the scene file.
	SceneName string `yaml:"scene_name,omitempty"`
	// StateDB is the SQLite file holding sessions.
	StateDB string `yaml:"state_db"`
	// LogFile enables rotating file logs when set.
	LogFile string `yaml:"log_file,omitempty"`
	// BoneMap replaces the built-in bone table when set.
	BoneMap string `yaml:"bone_map,omitempty"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads settings from a YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault loads DefaultFile from dir when it exists and returns the
// defaults otherwise.
func LoadDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFile)

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Parse parses YAML data into settings.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Scene == "" {
		cfg.Scene = "scene.yaml"
	}

	if cfg.StateDB == "" {
		cfg.StateDB = defaultStateDB()
	}
}

func defaultStateDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rig-retarget.db"
	}

	return filepath.Join(home, ".rig-retarget", "state.db")
}

// ApplyEnv overrides settings from environment variables looked up with
// lookup, usually os.LookupEnv. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(&c.Scene, EnvScene)
	set(&c.StateDB, EnvStateDB)
	set(&c.LogFile, EnvLogFile)
	set(&c.BoneMap, EnvBoneMap)
}
