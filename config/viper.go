package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	BindHost  string `toml:"bind_host" mapstructure:"bind_host"`
	BindPort  int    `toml:"bind_port" mapstructure:"bind_port"`
	APIRPM    int    `toml:"api_rpm" mapstructure:"api_rpm"`
	IPCToken  string `toml:"ipc_token" mapstructure:"ipc_token"`
	LogFormat string `toml:"log_format" mapstructure:"log_format"`
	LogLevel  string `toml:"log_level" mapstructure:"log_level"`
}

var C *Config

func InitConfig() {
	if C != nil {
		return
	}
	viper.SetConfigFile("config.toml")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("bind_host", "127.0.0.1")
	viper.SetDefault("bind_port", 8940)
	viper.SetDefault("api_rpm", 120)
	viper.SetDefault("log_format", "json")
	viper.SetDefault("log_level", "info")

	// The shell must come up without a config file; defaults cover it.
	if err := viper.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "err", err)
			os.Exit(1)
		}
		slog.Debug("no config file found, using defaults")
	}
	C = &Config{}
	if err := viper.Unmarshal(C); err != nil {
		slog.Error("failed to unmarshal config", "err", err)
		os.Exit(1)
	}
	slog.Debug("config loaded", "bind_host", C.BindHost, "bind_port", C.BindPort, "api_rpm", C.APIRPM)
}
