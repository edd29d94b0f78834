// Package logging builds the zap logger shared by userdesk components.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select level, encoding, and destination.
type Options struct {
	Level  string // debug | info | warn | error; empty means info
	Format string // console | json; empty means console
	File   string // empty writes to stderr
}

// New builds a logger. The TUI owns the terminal, so callers normally pass
// a file; stderr is only used for headless runs and tests.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if name := strings.TrimSpace(opts.Level); name != "" {
		if err := level.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", name, err)
		}
	}

	var cfg zap.Config
	switch strings.TrimSpace(opts.Format) {
	case "", "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	output := "stderr"
	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		output = path
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
