package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"

	"github.com/ghettovoice/sfv"
	"github.com/ghettovoice/sfv/internal/log"
)

// Config is the command configuration. Values are applied in order:
// defaults, TOML file, environment, flags.
type Config struct {
	Log    LogConfig
	Limits LimitsConfig
}

type LogConfig struct {
	Format string `env:"SFV_LOG_FORMAT,strict"`
	Level  string `env:"SFV_LOG_LEVEL,strict"`
}

type LimitsConfig struct {
	MaxInputLength      int `env:"SFV_MAX_INPUT_LENGTH,strict"`
	MaxMembers          int `env:"SFV_MAX_MEMBERS,strict"`
	MaxInnerListMembers int `env:"SFV_MAX_INNER_LIST_MEMBERS,strict"`
	MaxParameters       int `env:"SFV_MAX_PARAMETERS,strict"`
	MaxKeyLength        int `env:"SFV_MAX_KEY_LENGTH,strict"`
}

func (c LimitsConfig) limits() sfv.Limits {
	return sfv.Limits{
		MaxInputLength:      c.MaxInputLength,
		MaxMembers:          c.MaxMembers,
		MaxInnerListMembers: c.MaxInnerListMembers,
		MaxParameters:       c.MaxParameters,
		MaxKeyLength:        c.MaxKeyLength,
	}
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Format: log.FormatConsole,
			Level:  "warn",
		},
		Limits: LimitsConfig{
			MaxInputLength: 64 << 10,
		},
	}
}

// config.toml layout.
type fileConfig struct {
	Log struct {
		Format string `toml:"format"`
		Level  string `toml:"level"`
	} `toml:"log"`
	Limits struct {
		MaxInputLength      int `toml:"max_input_length"`
		MaxMembers          int `toml:"max_members"`
		MaxInnerListMembers int `toml:"max_inner_list_members"`
		MaxParameters       int `toml:"max_parameters"`
		MaxKeyLength        int `toml:"max_key_length"`
	} `toml:"limits"`
}

// loadConfig builds the configuration from defaults, the optional TOML file at path
// and SFV_* environment variables.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		if undec := meta.Undecoded(); len(undec) > 0 {
			return Config{}, fmt.Errorf("load config: unknown keys %v", undec)
		}

		if meta.IsDefined("log", "format") {
			cfg.Log.Format = strings.TrimSpace(raw.Log.Format)
		}
		if meta.IsDefined("log", "level") {
			cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
		}
		if meta.IsDefined("limits", "max_input_length") {
			cfg.Limits.MaxInputLength = raw.Limits.MaxInputLength
		}
		if meta.IsDefined("limits", "max_members") {
			cfg.Limits.MaxMembers = raw.Limits.MaxMembers
		}
		if meta.IsDefined("limits", "max_inner_list_members") {
			cfg.Limits.MaxInnerListMembers = raw.Limits.MaxInnerListMembers
		}
		if meta.IsDefined("limits", "max_parameters") {
			cfg.Limits.MaxParameters = raw.Limits.MaxParameters
		}
		if meta.IsDefined("limits", "max_key_length") {
			cfg.Limits.MaxKeyLength = raw.Limits.MaxKeyLength
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for name, v := range map[string]int{
		"max_input_length":       c.Limits.MaxInputLength,
		"max_members":            c.Limits.MaxMembers,
		"max_inner_list_members": c.Limits.MaxInnerListMembers,
		"max_parameters":         c.Limits.MaxParameters,
		"max_key_length":         c.Limits.MaxKeyLength,
	} {
		if v < 0 {
			return fmt.Errorf("invalid config: limits.%s must not be negative", name)
		}
	}
	return nil
}
