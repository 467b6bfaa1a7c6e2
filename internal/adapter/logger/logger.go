package logger

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

type Logger interface {
	Info(action, message, requestID string, details map[string]interface{})
	Debug(action, message, requestID string, details map[string]interface{})
	Error(action, message, requestID string, details map[string]interface{}, err error)
}

type jsonLogger struct {
	service  string
	hostname string
	minLevel int
	out      io.Writer
	mu       sync.Mutex
}

const (
	levelDebug = iota
	levelInfo
	levelError
)

// New returns a logger that writes one JSON object per line to stdout.
// level is "debug", "info" or "error"; anything below it is dropped.
func New(service, level string) Logger {
	return NewWithOutput(service, level, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(service, level string, out io.Writer) Logger {
	hostname, _ := os.Hostname()
	return &jsonLogger{
		service:  service,
		hostname: hostname,
		minLevel: parseLevel(level),
		out:      out,
	}
}

func parseLevel(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *jsonLogger) Info(action, message, requestID string, details map[string]interface{}) {
	l.log(levelInfo, "INFO", action, message, requestID, details, nil)
}

func (l *jsonLogger) Debug(action, message, requestID string, details map[string]interface{}) {
	l.log(levelDebug, "DEBUG", action, message, requestID, details, nil)
}

func (l *jsonLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
	l.log(levelError, "ERROR", action, message, requestID, details, err)
}

func (l *jsonLogger) log(level int, name, action, message, requestID string, details map[string]interface{}, err error) {
	if level < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     name,
		Service:   l.service,
		Hostname:  l.hostname,
		RequestID: requestID,
		Action:    action,
		Message:   message,
		Details:   details,
	}

	if err != nil {
		entry.Error = &ErrorInfo{Msg: err.Error()}
	}

	json.NewEncoder(l.out).Encode(entry)
}
