// Package config loads onborder client configuration from flags, the
// environment, and an optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ONBORDER_ENDPOINT.
const EnvPrefix = "ONBORDER"

const (
	keyConfig      = "config"
	keyEndpoint    = "endpoint"
	keyTimeout     = "timeout"
	keyOffline     = "offline"
	keyLogFile     = "log-file"
	keyLogLevel    = "log-level"
	keyOTLP        = "otlp-endpoint"
	keyServiceName = "service-name"
)

// Config is the client runtime configuration.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Offline  bool
	Logging  Logging
	Tracing  Tracing
}

// Logging configures the file logger.
type Logging struct {
	File  string
	Level string
}

// Tracing configures span export.
type Tracing struct {
	Endpoint    string
	ServiceName string
}

// ErrHelp is returned when -h/--help was requested.
var ErrHelp = pflag.ErrHelp

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("onborder", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringP(keyConfig, "c", "", "path to a YAML config file")
	fs.StringP(keyEndpoint, "e", "http://localhost:3000", "onboarding backend base URL")
	fs.DurationP(keyTimeout, "t", 10*time.Second, "timeout for backend requests")
	fs.Bool(keyOffline, false, "serve a built-in empty screen instead of calling the backend")
	fs.String(keyLogFile, "onborder.log", "path of the log file")
	fs.StringP(keyLogLevel, "l", "info", "log output level")
	fs.String(keyOTLP, "", "OTLP/HTTP collector host:port (empty disables trace export)")
	fs.String(keyServiceName, "onborder", "service name reported with traces")
	return fs
}

// Usage returns the flag help text.
func Usage() string {
	return "Usage: onborder [flags]\n\n" + newFlagSet().FlagUsages()
}

// Load parses args and merges the environment and config file.
func Load(args []string) (Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Endpoint: v.GetString(keyEndpoint),
		Timeout:  v.GetDuration(keyTimeout),
		Offline:  v.GetBool(keyOffline),
		Logging: Logging{
			File:  v.GetString(keyLogFile),
			Level: v.GetString(keyLogLevel),
		},
		Tracing: Tracing{
			Endpoint:    v.GetString(keyOTLP),
			ServiceName: v.GetString(keyServiceName),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readConfigFile reads the explicit config file if one was given, otherwise
// $HOME/.config/onborder/config.yaml when it exists.
func readConfigFile(v *viper.Viper) error {
	v.SetConfigType("yaml")
	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(filepath.Join(home, ".config", "onborder"))
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", c.Timeout)
	}
	if c.Offline {
		return nil
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint)
	}
	return nil
}
