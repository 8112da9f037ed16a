package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type LoggingCfg struct {
	Level string `mapstructure:"level"`
}

// ValidationCfg carries the default expiration policy applied when a
// command does not override it with flags.
type ValidationCfg struct {
	ExpiresIn     int `mapstructure:"expires_in"`     // seconds; 0 disables
	SkewAllowance int `mapstructure:"skew_allowance"` // seconds
}

// ThirdPartyCfg carries defaults for third-party (public key) validation.
type ThirdPartyCfg struct {
	BotID       int64  `mapstructure:"bot_id"`
	Environment string `mapstructure:"environment"`
}

type ServerCfg struct {
	Addr   string `mapstructure:"addr"`
	Header string `mapstructure:"header"`
}

type Config struct {
	Version      string        `mapstructure:"version"`
	ProfilesFile string        `mapstructure:"profiles_file"`
	Validation   ValidationCfg `mapstructure:"validation"`
	ThirdParty   ThirdPartyCfg `mapstructure:"third_party"`
	Server       ServerCfg     `mapstructure:"server"`
	Logging      LoggingCfg    `mapstructure:"logging"`
}

// ExpiresIn returns the configured freshness window as a duration.
func (c *Config) ExpiresIn() time.Duration {
	return time.Duration(c.Validation.ExpiresIn) * time.Second
}

// SkewAllowance returns the configured clock skew tolerance as a duration.
func (c *Config) SkewAllowance() time.Duration {
	return time.Duration(c.Validation.SkewAllowance) * time.Second
}

var cfg *Config

// Load populates global config from a viper instance
func Load(v *viper.Viper) error {
	// set defaults
	v.SetDefault("version", "0.1")
	v.SetDefault("validation.expires_in", 86400)
	v.SetDefault("validation.skew_allowance", 0)
	v.SetDefault("third_party.environment", "production")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("logging.level", "info")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg = &c
	return nil
}

func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return cfg
}
