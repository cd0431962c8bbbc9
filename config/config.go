// Package config loads provider configurations and the session policy from a
// YAML file plus MEMSIFT_* environment variables. Ownership of the values
// rests here; the filter and session layers consume them read-only.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/memsift/memsift/core"
	"github.com/memsift/memsift/session"
)

// Config is the root configuration consumed by the filter.
type Config struct {
	Providers []core.ProviderConfig `mapstructure:"providers"`
	Session   session.Policy        `mapstructure:"session"`
	Log       LogConfig             `mapstructure:"log"`
}

// LogConfig controls the logrus setup.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file, or from memsift.yaml in the
// working directory and ~/.config/memsift when path is empty. Environment
// variables prefixed MEMSIFT_ override file values; provider credentials left
// empty fall back to the conventional <NAME>_API_KEY variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("memsift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/memsift")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("MEMSIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyEnvCredentials(cfg.Providers)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("session.max_context_tokens", session.DefaultMaxContextTokens)
	v.SetDefault("log.level", "info")
}

// applyEnvCredentials fills missing API keys from the conventional
// environment variables (OPENAI_API_KEY, ANTHROPIC_API_KEY, ...). A key that
// stays empty is not an error: the adapter loads as unavailable and the pool
// continues with the remaining backends.
func applyEnvCredentials(providers []core.ProviderConfig) {
	for i := range providers {
		if providers[i].APIKey != "" {
			continue
		}
		env := strings.ToUpper(strings.ReplaceAll(providers[i].Name, "-", "_")) + "_API_KEY"
		providers[i].APIKey = os.Getenv(env)
	}
}

// Validate checks structural invariants the loader cannot express.
func (c *Config) Validate() error {
	for _, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider entry missing name")
		}
		if p.Enabled && p.Model == "" {
			return fmt.Errorf("provider %s: model is required", p.Name)
		}
	}
	if c.Session.MaxContextTokens < 0 {
		return fmt.Errorf("session.max_context_tokens must not be negative")
	}
	return nil
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
