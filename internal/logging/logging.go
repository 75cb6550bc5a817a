// Package logging builds the zerolog loggers handed to every component.
// Filtering is per logger; the package only lowers zerolog's global floor once.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// zerolog's global floor defaults to debug; open it so each logger's own
// level decides, including trace.
func init() {
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// Config selects the level and destination of a logger.
type Config struct {
	Level string
	// File, when set, receives the log instead of stderr.
	File string
	// NoColor disables ANSI colours on the console writer.
	NoColor bool
}

// ParseLevel maps a level name to a zerolog level. "silly" is accepted as an
// alias for trace.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace", "silly":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "off", "disabled":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a console logger for cfg. The returned closer releases the log
// file, if any, and is always non-nil.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	noColor := cfg.NoColor
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		out, closer = f, f
		noColor = true
	}

	return NewWithWriter(out, level, noColor), closer, nil
}

// NewWithWriter returns a console logger writing to w.
func NewWithWriter(w io.Writer, level zerolog.Level, noColor bool) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}
	return zerolog.New(consoleWriter).Level(level).With().Timestamp().Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
