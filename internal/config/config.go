package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/userdesk/internal/netmon"
	"github.com/five82/userdesk/internal/reqres"
	"github.com/five82/userdesk/internal/state"
)

// Config captures userdesk's runtime settings.
type Config struct {
	BaseURL           string
	APIKey            string
	RequestTimeout    time.Duration
	ProbeAddress      string
	ProbeInterval     time.Duration
	ToastDuration     time.Duration
	RequestsPerSecond float64
	LogLevel          string
	LogFormat         string
	LogFile           string
}

const (
	defaultConfigPath     = "~/.config/userdesk/config.toml"
	defaultBaseURL        = reqres.DefaultBaseURL
	defaultRequestTimeout = 30 * time.Second
	defaultProbeAddress   = netmon.DefaultProbeAddress
	defaultProbeInterval  = netmon.DefaultProbeInterval
	defaultToastDuration  = state.DefaultToastDuration
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogFile        = "~/.local/state/userdesk/userdesk.log"
)

// ErrInvalidValue marks a config value that parsed but cannot be used.
var ErrInvalidValue = errors.New("invalid config value")

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		ProbeAddress:   defaultProbeAddress,
		ProbeInterval:  defaultProbeInterval,
		ToastDuration:  defaultToastDuration,
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when
// it is missing and for any field left empty.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL           string  `toml:"base_url"`
		APIKey            string  `toml:"api_key"`
		RequestTimeout    string  `toml:"request_timeout"`
		ProbeAddress      string  `toml:"probe_address"`
		ProbeInterval     string  `toml:"probe_interval"`
		ToastDuration     string  `toml:"toast_duration"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
		LogLevel          string  `toml:"log_level"`
		LogFormat         string  `toml:"log_format"`
		LogFile           string  `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.BaseURL, raw.BaseURL)
	setString(&cfg.APIKey, raw.APIKey)
	setString(&cfg.ProbeAddress, raw.ProbeAddress)
	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.LogFormat, raw.LogFormat)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	for _, field := range []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"probe_interval", raw.ProbeInterval, &cfg.ProbeInterval},
		{"toast_duration", raw.ToastDuration, &cfg.ToastDuration},
	} {
		if err := setDuration(field.dest, field.key, field.value); err != nil {
			return Config{}, err
		}
	}

	if raw.RequestsPerSecond < 0 {
		return Config{}, fmt.Errorf("requests_per_second %v: %w", raw.RequestsPerSecond, ErrInvalidValue)
	}
	cfg.RequestsPerSecond = raw.RequestsPerSecond

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return Config{}, fmt.Errorf("log_format %q: %w", cfg.LogFormat, ErrInvalidValue)
	}

	return cfg, nil
}

func setString(dest *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dest = trimmed
	}
}

func setDuration(dest *time.Duration, key, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s %s: %w", key, trimmed, ErrInvalidValue)
	}
	*dest = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
