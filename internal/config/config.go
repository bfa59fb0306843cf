// Package config reads the engine's runtime settings (scheduler
// thresholds, verbosity, knowledge-base path) via viper, and the
// knowledge-base file itself via yaml.v3 (see knowledgebase.go).
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mrhapile/stateforge/pkg/scheduler"
)

// Config holds the CLI's runtime settings, loaded from a config file,
// STATEFORGE_-prefixed environment variables, and defaults (in viper's
// usual precedence order).
type Config struct {
	MaxPredatorSize int    `mapstructure:"max_predator_size"`
	MaxClusterSize  int    `mapstructure:"max_cluster_size"`
	Verbose         bool   `mapstructure:"verbose"`
	KnowledgeBase   string `mapstructure:"knowledge_base"`
}

// SchedulerConfig projects Config onto scheduler.Config.
func (c Config) SchedulerConfig() scheduler.Config {
	cfg := scheduler.DefaultConfig()
	if c.MaxPredatorSize > 0 {
		cfg.MaxPredatorSize = c.MaxPredatorSize
	}
	if c.MaxClusterSize > 0 {
		cfg.MaxClusterSize = c.MaxClusterSize
	}
	return cfg
}

// Load reads configFile (if non-empty) via viper, falling back to the
// defaults below for any key it doesn't set, and binds the equivalent
// STATEFORGE_-prefixed environment variables.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STATEFORGE")
	v.AutomaticEnv()

	v.SetDefault("max_predator_size", scheduler.DefaultConfig().MaxPredatorSize)
	v.SetDefault("max_cluster_size", scheduler.DefaultConfig().MaxClusterSize)
	v.SetDefault("verbose", false)
	v.SetDefault("knowledge_base", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config file %s: %w", configFile, err)
	}
	return cfg, nil
}
