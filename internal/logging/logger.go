package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes formatted lines through a buffered channel so event
// handlers never block on disk I/O. Lines are dropped, and counted, when
// the buffer is full.
type Logger struct {
	level   Level
	out     io.Writer
	file    *os.File
	logChan chan string
	wg      sync.WaitGroup
	dropped atomic.Uint64
}

// New creates a logger writing to the given file path. An empty path logs
// to stderr only.
func New(level Level, path string) (*Logger, error) {
	l := &Logger{
		level:   level,
		out:     os.Stderr,
		logChan: make(chan string, 4096),
	}

	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = file
		l.out = io.MultiWriter(os.Stderr, file)
	}

	l.wg.Add(1)
	go l.worker()

	return l, nil
}

func (l *Logger) worker() {
	defer l.wg.Done()
	for line := range l.logChan {
		io.WriteString(l.out, line)
	}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	line := fmt.Sprintf("[%s] [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05.000"),
		levelString(level),
		fmt.Sprintf(format, args...))

	select {
	case l.logChan <- line:
	default:
		l.dropped.Add(1)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(LevelError, format, args...) }

// Dropped reports how many lines were discarded because the buffer was full.
func (l *Logger) Dropped() uint64 { return l.dropped.Load() }

// Close drains the buffer and closes the log file.
func (l *Logger) Close() error {
	close(l.logChan)
	l.wg.Wait()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func levelString(level Level) string {
	switch level {
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

var globalLogger *Logger

// InitGlobal sets up the process-wide logger used by the package-level
// helpers.
func InitGlobal(level string, path string) error {
	logger, err := New(ParseLevel(level), path)
	if err != nil {
		return err
	}
	globalLogger = logger
	return nil
}

// CloseGlobal flushes and closes the process-wide logger.
func CloseGlobal() error {
	if globalLogger == nil {
		return nil
	}
	return globalLogger.Close()
}

func Debug(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debug(format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(format, args...)
	}
}
