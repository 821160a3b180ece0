// Package log writes a levelled debug log for eolbox. Output goes to a
// file opened with tea.LogToFile, since the terminal belongs to the TUI,
// and recent entries are kept in memory for the log overlay. Logging is a
// no-op until Init is called.
package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related messages.
type Category string

const (
	CatHost    Category = "host"    // text control operations
	CatUI      Category = "ui"      // TUI events
	CatSource  Category = "source"  // input reading
	CatConfig  Category = "config"  // flags and config file
	CatConvert Category = "convert" // one-shot conversions
)

type logger struct {
	mu       sync.Mutex
	writer   io.Writer
	buffer   *RingBuffer
	minLevel Level
}

var (
	mu            sync.RWMutex
	defaultLogger *logger
)

// Init opens path for appending and starts logging at minLevel. The
// returned cleanup closes the file.
func Init(path string, minLevel Level, bufferSize int) (func(), error) {
	f, err := tea.LogToFile(path, "eolbox")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	// tea.LogToFile also points the standard logger at f; entries written
	// here carry their own timestamp.
	setLogger(&logger{
		writer:   f,
		buffer:   NewRingBuffer(bufferSize),
		minLevel: minLevel,
	})
	return func() {
		setLogger(nil)
		_ = f.Close()
	}, nil
}

// InitWriter logs to w without a file. Used by tests and by callers that
// only want the in-memory buffer.
func InitWriter(w io.Writer, minLevel Level, bufferSize int) {
	setLogger(&logger{
		writer:   w,
		buffer:   NewRingBuffer(bufferSize),
		minLevel: minLevel,
	})
}

func setLogger(l *logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func current() *logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Enabled reports whether a logger is installed.
func Enabled() bool {
	return current() != nil
}

// SetMinLevel changes the minimum level written.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs msg at error level with err as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

// Format: 2026-01-02T15:04:05 [INFO] [host] message key=value
func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteByte('\n')
	entry := b.String()

	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	l.buffer.Add(strings.TrimSuffix(entry, "\n"))
}

// Recent returns up to n recent entries, oldest first.
func Recent(n int) []string {
	l := current()
	if l == nil {
		return nil
	}
	return l.buffer.GetLast(n)
}

// ClearRecent empties the in-memory entries.
func ClearRecent() {
	if l := current(); l != nil {
		l.buffer.Clear()
	}
}
