package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/todolists/internal/config"
	"github.com/aretw0/todolists/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "todolists",
	Short:         "Todolists is a session-backed web app for to-do lists",
	Long:          `Todolists serves named to-do lists kept in each visitor's session, with memory, file or Redis session stores.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// flagKeys maps persistent flags to their configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log_level",
	"log-format": "log_format",
	"store":      "store",
	"store-path": "store_path",
	"redis-addr": "redis_addr",
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./todolists.yaml)")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")
	pf.String("store", config.StoreMemory, "Session store (memory, file, redis)")
	pf.String("store-path", ".todolists/sessions", "Directory for the file store")
	pf.String("redis-addr", "localhost:6379", "Redis address for the redis store")
}

// loadConfig resolves the configuration for cmd, with its flags taking precedence.
func loadConfig(cmd *cobra.Command, keys map[string]string) (*config.Config, error) {
	v := viper.New()
	for _, m := range []map[string]string{flagKeys, keys} {
		for flag, key := range m {
			if f := cmd.Flags().Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}
	configFile, _ := cmd.Flags().GetString("config")
	return config.Load(v, configFile)
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, format), nil
}
