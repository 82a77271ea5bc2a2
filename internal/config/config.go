package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/Makepad-fr/gallery/internal/api"
	"github.com/Makepad-fr/gallery/internal/gallery"
)

const (
	EnvPrefix = "GALLERY"
	fileName  = ".gallery"
	fileType  = "yaml"
)

// Keys understood in the config file and as GALLERY_<KEY> variables.
const (
	KeyBaseURL  = "base_url"
	KeyView     = "view"
	KeyRefresh  = "refresh"
	KeyTheme    = "theme"
	KeyTimeout  = "timeout"
	KeyLogFile  = "log_file"
	KeyLogLevel = "log_level"
)

// Config is the resolved runtime configuration.
type Config struct {
	BaseURL string
	View    gallery.View
	// Refresh is nil when the view's default policy applies.
	Refresh  *gallery.RefreshPolicy
	Theme    string
	Timeout  time.Duration
	LogFile  string
	LogLevel slog.Level
}

// Init prepares v: defaults, .env, environment and the config file.
// An explicit cfgFile must exist; the default ~/.gallery.yaml is optional.
func Init(v *viper.Viper, cfgFile string) error {
	v.SetDefault(KeyBaseURL, api.DefaultBaseURL)
	v.SetDefault(KeyView, "grid")
	v.SetDefault(KeyRefresh, "")
	v.SetDefault(KeyTheme, "classic")
	v.SetDefault(KeyTimeout, time.Duration(0))
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "warn")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigType(fileType)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("home: %w", err)
	}
	v.AddConfigPath(home)
	v.SetConfigName(fileName)
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// From validates and resolves the values held by v.
func From(v *viper.Viper) (Config, error) {
	var c Config

	c.BaseURL = strings.TrimRight(strings.TrimSpace(v.GetString(KeyBaseURL)), "/")
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("%s: want an absolute http(s) URL, got %q", KeyBaseURL, c.BaseURL)
	}

	if c.View, err = gallery.ParseView(strings.ToLower(v.GetString(KeyView))); err != nil {
		return Config{}, err
	}

	if s := strings.ToLower(strings.TrimSpace(v.GetString(KeyRefresh))); s != "" {
		p, err := gallery.ParseRefreshPolicy(s)
		if err != nil {
			return Config{}, err
		}
		c.Refresh = &p
	}

	c.Theme = strings.ToLower(v.GetString(KeyTheme))
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return Config{}, fmt.Errorf("unknown theme %q (want classic|neon|mono)", c.Theme)
	}

	c.Timeout = v.GetDuration(KeyTimeout)
	if c.Timeout < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyTimeout)
	}

	c.LogFile = v.GetString(KeyLogFile)
	if err := c.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return c, nil
}

// Policy is the refresh policy for the configured view.
func (c Config) Policy() gallery.RefreshPolicy {
	if c.Refresh != nil {
		return *c.Refresh
	}
	return c.View.DefaultPolicy()
}

// Logger builds the slog logger. With a log file it appends there; otherwise it
// writes to w, and discards when w is nil.
func (c Config) Logger(w io.Writer) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), f.Close, nil
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), noop, nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), noop, nil
}
