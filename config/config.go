package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultAPIURL   = "http://localhost:8080"
	defaultLogFile  = "library-console.log"
	defaultLogLevel = "info"
	defaultColor    = ColorAuto
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type (
	Config struct {
		API struct {
			URL     string        `env:"LIBRARY_API_URL"`
			Timeout time.Duration `env:"LIBRARY_API_TIMEOUT"`
		}

		Log struct {
			File  string `env:"LIBRARY_LOG_FILE"`
			Level string `env:"LIBRARY_LOG_LEVEL"`
		}

		Color string `env:"LIBRARY_COLOR"`
	}
)

// NewConfig resolves settings from flags, the environment (a .env file in the
// working directory is loaded first), an optional config file and defaults,
// in that order of precedence.
func NewConfig(flags *pflag.FlagSet, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("api.url", defaultAPIURL)
	v.SetDefault("api.timeout", time.Duration(0))
	v.SetDefault("log.file", defaultLogFile)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("color", defaultColor)

	for key, env := range map[string]string{
		"api.url":     "LIBRARY_API_URL",
		"api.timeout": "LIBRARY_API_TIMEOUT",
		"log.file":    "LIBRARY_LOG_FILE",
		"log.level":   "LIBRARY_LOG_LEVEL",
		"color":       "LIBRARY_COLOR",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"api.url":  "api",
			"log.file": "log-file",
			"color":    "color",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	cfg.API.URL = strings.TrimSpace(v.GetString("api.url"))
	cfg.API.Timeout = v.GetDuration("api.timeout")
	cfg.Log.File = v.GetString("log.file")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Color = strings.ToLower(v.GetString("color"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api url %q", c.API.URL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("negative api timeout %s", c.API.Timeout)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q", c.Color)
	}
	return nil
}

// UseColor decides whether output is styled; isTerminal is consulted only in auto mode.
func (c *Config) UseColor(isTerminal func() bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal()
	}
}
