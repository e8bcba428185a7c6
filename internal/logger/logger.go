// Package logger is the leveled stderr logger shared by the themer
// commands and the server. Output goes to stderr so scheme output on stdout
// stays pipeable.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level orders messages from most to least verbose.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// levelInfo pairs each level's label with a colour from the default
// terminal scheme.
var levelInfo = [...]struct {
	name  string
	style lipgloss.Style
}{
	LevelTrace: {"TRACE", lipgloss.NewStyle().Foreground(lipgloss.Color("#8abeb7"))},
	LevelDebug: {"DEBUG", lipgloss.NewStyle().Foreground(lipgloss.Color("#81a2be"))},
	LevelInfo:  {"INFO", lipgloss.NewStyle().Foreground(lipgloss.Color("#b5bd68"))},
	LevelWarn:  {"WARN", lipgloss.NewStyle().Foreground(lipgloss.Color("#f0c674"))},
	LevelError: {"ERROR", lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#cc6666"))},
}

var faint = lipgloss.NewStyle().Faint(true)

// String returns the upper-case label printed in log lines.
func (l Level) String() string {
	if l < LevelTrace || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelInfo[l].name
}

// ParseLevel accepts the LOG_LEVEL / -log-level spellings; empty means info.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q (valid: trace, debug, info, warn, error)", s)
}

// settings is the process-wide logger state.
type settings struct {
	mu      sync.RWMutex
	level   Level
	colored bool
	out     io.Writer
}

var global = &settings{level: LevelInfo, colored: true, out: os.Stderr}

// exit is swapped out by tests of Fatal.
var exit = os.Exit

// SetGlobalLevel sets the minimum level written by every Logger.
func SetGlobalLevel(level Level) {
	global.mu.Lock()
	global.level = level
	global.mu.Unlock()
}

// SetGlobalLevelFromString is SetGlobalLevel for config values; unknown
// names leave the level unchanged.
func SetGlobalLevelFromString(level string) {
	if l, err := ParseLevel(level); err == nil {
		SetGlobalLevel(l)
	}
}

// SetColored turns lipgloss styling on or off (NO_COLOR).
func SetColored(colored bool) {
	global.mu.Lock()
	global.colored = colored
	global.mu.Unlock()
}

// SetOutput redirects all loggers; nil restores stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	global.mu.Lock()
	global.out = w
	global.mu.Unlock()
}

// Logger tags every line with the component that wrote it.
type Logger struct {
	prefix string
}

// New returns a Logger for one component, e.g. New("mixer").
func New(prefix string) *Logger {
	return &Logger{prefix: prefix}
}

func (l *Logger) Trace(format string, args ...any) { l.write(LevelTrace, format, args...) }
func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.write(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.write(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, format, args...) }

// Fatal logs at error level, whatever the global level, and exits 1.
func (l *Logger) Fatal(format string, args ...any) {
	l.emit(LevelError, fmt.Sprintf(format, args...))
	exit(1)
}

func (l *Logger) write(level Level, format string, args ...any) {
	global.mu.RLock()
	enabled := level >= global.level
	global.mu.RUnlock()
	if !enabled {
		return
	}
	l.emit(level, fmt.Sprintf(format, args...))
}

func (l *Logger) emit(level Level, msg string) {
	global.mu.RLock()
	colored, out := global.colored, global.out
	global.mu.RUnlock()

	ts := time.Now().Format("15:04:05")
	label := "[" + level.String() + "]"
	tag := "[" + l.prefix + "]"
	if colored {
		ts, label, tag = faint.Render(ts), levelInfo[level].style.Render(label), faint.Render(tag)
	}
	fmt.Fprintf(out, "%s %s %s %s\n", ts, label, tag, msg)
}
