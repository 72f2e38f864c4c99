// Package config loads server configuration from flags, environment, .env files and a YAML file.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TODOLISTS_ADDR.
const EnvPrefix = "TODOLISTS"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds the server configuration.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	SessionSecret string        `mapstructure:"session_secret"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`

	Store     string `mapstructure:"store"`
	StorePath string `mapstructure:"store_path"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`

	EncryptionKey          string   `mapstructure:"encryption_key"`
	EncryptionFallbackKeys []string `mapstructure:"encryption_fallback_keys"`

	// ConfigFile is the file actually read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":4567")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("shutdown_timeout", "5s")
	v.SetDefault("session_secret", "")
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("store", StoreMemory)
	v.SetDefault("store_path", ".todolists/sessions")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "todolists:session:")
	v.SetDefault("encryption_key", "")
	v.SetDefault("encryption_fallback_keys", []string{})
}

// Load builds a Config in order of precedence:
// 1. Command-line flags (bound to v by the caller)
// 2. Environment variables (TODOLISTS_*)
// 3. .env files
// 4. Config file (explicit path, or todolists.yaml in the working directory)
// 5. Defaults
func Load(v *viper.Viper, configFile string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	// godotenv never overrides variables already set in the environment.
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", f, err)
			}
		}
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("todolists")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that the server cannot start without.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store %q (expected memory|file|redis)", c.Store)
	}
	if c.Addr == "" {
		return errors.New("addr is empty")
	}
	if c.SessionTTL < 0 {
		return errors.New("session_ttl must not be negative")
	}
	if _, _, err := c.EncryptionKeys(); err != nil {
		return err
	}
	return nil
}

// EncryptionKeys decodes the configured keys. A nil active key means encryption is off.
// Keys are accepted as 64 hex characters or 32 raw bytes.
func (c *Config) EncryptionKeys() (active []byte, fallback [][]byte, err error) {
	if c.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err = decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryption_key: %w", err)
	}
	for i, k := range c.EncryptionFallbackKeys {
		b, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("encryption_fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, b)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) == 64 {
		if b, err := hex.DecodeString(s); err == nil {
			return b, nil
		}
	}
	if len(s) == 32 {
		return []byte(s), nil
	}
	return nil, errors.New("key must be 32 bytes or 64 hex characters")
}
