// Package logging builds the zerolog logger used by the CLI and shell.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log level, format and destination.
type Config struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Format   string `mapstructure:"format" yaml:"format"` // console or json
	Output   string `mapstructure:"output" yaml:"output"` // stderr, stdout or file
	FilePath string `mapstructure:"file_path" yaml:"file_path,omitempty"`
}

// New constructs a zerolog logger from cfg. Defaults to warn level,
// console format, stderr when fields are empty. The returned closer is
// non-nil only for file output.
func New(cfg Config, version string) (*zerolog.Logger, io.Closer, error) {
	level := zerolog.WarnLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	output := io.Writer(os.Stderr)
	var closer io.Closer

	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "stdout":
		output = os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("log.output=file requires log.file_path")
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		output = file
		closer = file
	}

	if strings.ToLower(strings.TrimSpace(cfg.Format)) != "json" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	logger := NewWithWriter(output, level).With().Str("version", version).Logger()
	return &logger, closer, nil
}

// NewWithWriter returns a timestamped logger writing JSON to w at level.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "stockroom").Logger()
}
