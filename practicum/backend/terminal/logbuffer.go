package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// logEntry is a single formatted log line
type logEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

func (e logEntry) String() string {
	var level string
	switch {
	case e.Level >= slog.LevelError:
		level = "ERR"
	case e.Level >= slog.LevelWarn:
		level = "WRN"
	case e.Level >= slog.LevelInfo:
		level = "INF"
	default:
		level = "DBG"
	}
	return fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05"), level, e.Message)
}

// logBuffer is a thread-safe ring of the most recent log lines
type logBuffer struct {
	mu      sync.RWMutex
	entries []logEntry
	index   int
	count   int
}

func newLogBuffer(size int) *logBuffer {
	return &logBuffer{entries: make([]logEntry, size)}
}

func (lb *logBuffer) add(entry logEntry) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	lb.entries[lb.index] = entry
	lb.index = (lb.index + 1) % len(lb.entries)
	if lb.count < len(lb.entries) {
		lb.count++
	}
}

// recent returns up to max entries, newest first
func (lb *logBuffer) recent(max int) []logEntry {
	lb.mu.RLock()
	defer lb.mu.RUnlock()

	count := lb.count
	if max > 0 && max < count {
		count = max
	}

	size := len(lb.entries)
	result := make([]logEntry, count)
	for i := 0; i < count; i++ {
		result[i] = lb.entries[(lb.index-1-i+size)%size]
	}
	return result
}

// logHandler is a slog.Handler writing into a logBuffer, so logs stay
// readable while tcell owns the terminal.
type logHandler struct {
	buffer *logBuffer
	level  slog.Leveler
	attrs  []slog.Attr
}

func newLogHandler(buffer *logBuffer, level slog.Leveler) *logHandler {
	return &logHandler{buffer: buffer, level: level}
}

func (h *logHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *logHandler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message
	for _, a := range h.attrs {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	record.Attrs(func(a slog.Attr) bool {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	h.buffer.add(logEntry{
		Time:    record.Time,
		Level:   record.Level,
		Message: message,
	})
	return nil
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &logHandler{buffer: h.buffer, level: h.level, attrs: merged}
}

// WithGroup is not supported, groups are flattened
func (h *logHandler) WithGroup(string) slog.Handler {
	return h
}
