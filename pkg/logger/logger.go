package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Logger is the leveled key/value logger used across services.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = map[level]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

type stdLogger struct {
	out *log.Logger
	min level
}

// New creates a logger that writes to stderr at the given minimum level.
// Unknown level names fall back to info.
func New(levelName string) Logger {
	min := levelInfo
	switch strings.ToLower(levelName) {
	case "debug":
		min = levelDebug
	case "warn":
		min = levelWarn
	case "error":
		min = levelError
	}
	return &stdLogger{
		out: log.New(os.Stderr, "", log.Ldate|log.Ltime),
		min: min,
	}
}

func (l *stdLogger) Debug(msg string, keyvals ...interface{}) { l.log(levelDebug, msg, keyvals...) }
func (l *stdLogger) Info(msg string, keyvals ...interface{})  { l.log(levelInfo, msg, keyvals...) }
func (l *stdLogger) Warn(msg string, keyvals ...interface{})  { l.log(levelWarn, msg, keyvals...) }
func (l *stdLogger) Error(msg string, keyvals ...interface{}) { l.log(levelError, msg, keyvals...) }

func (l *stdLogger) log(lv level, msg string, keyvals ...interface{}) {
	if lv < l.min {
		return
	}
	var b strings.Builder
	b.WriteString(levelNames[lv])
	b.WriteString(": ")
	b.WriteString(msg)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprintf("%v", keyvals[i])
		value := "missing"
		if i+1 < len(keyvals) {
			value = fmt.Sprintf("%v", keyvals[i+1])
		}
		b.WriteString(" " + key + "=" + value)
	}
	l.out.Println(b.String())
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
