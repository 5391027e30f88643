package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Level names accepted by --log-level.
const (
	LevelQuiet    = "quiet"
	LevelStandard = "standard"
	LevelDebug    = "debug"
)

// ParseLevel maps a --log-level value to a zerolog level.
// An empty value means "standard".
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LevelQuiet:
		return zerolog.Disabled, nil
	case "", LevelStandard:
		return zerolog.WarnLevel, nil
	case LevelDebug:
		return zerolog.DebugLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("invalid --log-level %q (expected quiet|standard|debug)", s)
	}
}

// New returns a human readable console logger writing to w.
// When w is nil, the logger is disabled.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewJSON returns a JSON-lines logger, used by long running servers.
func NewJSON(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		return zerolog.Nop()
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Logger is a tiny opt-in logger used across internal packages.
// The zero value is disabled.
//
// Every event carries component=<Component>.
type Logger struct {
	Component string

	zl      zerolog.Logger
	enabled bool
}

// Set replaces the destination logger.
func (l *Logger) Set(zl zerolog.Logger) {
	if l == nil {
		return
	}
	c := strings.TrimSpace(l.Component)
	if c == "" {
		c = "(unknown)"
	}
	l.zl = zl.With().Str("component", c).Logger()
	l.enabled = zl.GetLevel() != zerolog.Disabled
}

func (l *Logger) Enabled() bool { return l != nil && l.enabled }

// Debug starts a debug event. It returns nil (a valid no-op event) when disabled.
func (l *Logger) Debug() *zerolog.Event {
	if !l.Enabled() {
		return nil
	}
	return l.zl.Debug()
}

// Warn starts a warning event.
func (l *Logger) Warn() *zerolog.Event {
	if !l.Enabled() {
		return nil
	}
	return l.zl.Warn()
}

// Error starts an error event.
func (l *Logger) Error() *zerolog.Event {
	if !l.Enabled() {
		return nil
	}
	return l.zl.Error()
}

type fdWriter interface {
	Fd() uintptr
}

// isTerminal reports whether w is attached to a terminal; only then are
// console logs colored.
func isTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
