// Package config binds the feed replayer's command-line flags to a
// typed configuration, with FEEDREPLAY_-prefixed environment variable
// overrides.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the replayer's ambient configuration: everything that is
// not itself replay data (the file path and symbol filter are taken
// as positional command arguments, not config).
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Bind registers --log-level and --log-format on cmd and wires viper
// to read them with FEEDREPLAY_ environment variable overrides
// (FEEDREPLAY_LOG_LEVEL, FEEDREPLAY_LOG_FORMAT).
func Bind(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("FEEDREPLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd.Flags().String("log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().String("log-format", "console", "log output format: console or json")
	v.BindPFlag("log_level", cmd.Flags().Lookup("log-level"))
	v.BindPFlag("log_format", cmd.Flags().Lookup("log-format"))

	return v
}

// Load materializes a Config from a bound viper instance.
func Load(v *viper.Viper) Config {
	return Config{
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}
}
