package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type LogLevel uint8

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelCritical
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "CRITICAL"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

type entry struct {
	when  time.Time
	level LogLevel
	msg   string
}

// Logger is an asynchronous leveled logger. Callers push entries onto a
// buffered channel drained by a single writer goroutine, so event handlers
// never wait on disk. When the buffer is full the entry is dropped and
// counted; the writer reports the drop count once the pressure clears.
type Logger struct {
	level   LogLevel
	file    *os.File
	out     io.Writer
	entries chan entry
	dropped atomic.Uint64
	wg      sync.WaitGroup
}

func NewLogger(level LogLevel, path string) (*Logger, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		level:   level,
		file:    file,
		out:     io.MultiWriter(file, os.Stdout),
		entries: make(chan entry, 10000),
	}

	l.wg.Add(1)
	go l.writer()

	return l, nil
}

// writer formats and flushes entries. Formatting happens here rather than
// on the caller's goroutine.
func (l *Logger) writer() {
	defer l.wg.Done()
	for e := range l.entries {
		fmt.Fprintf(l.out, "[%s] [%s] %s\n",
			e.when.Format("2006-01-02 15:04:05.000"), e.level, e.msg)

		if n := l.dropped.Swap(0); n > 0 {
			fmt.Fprintf(l.out, "[%s] [WARN] logger dropped %d entries under load\n",
				time.Now().Format("2006-01-02 15:04:05.000"), n)
		}
	}
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	select {
	case l.entries <- entry{when: time.Now(), level: level, msg: fmt.Sprintf(format, args...)}:
	default:
		l.dropped.Add(1)
	}
}

func (l *Logger) Debug(format string, args ...interface{})    { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...interface{})     { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})     { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...interface{})    { l.log(LevelError, format, args...) }
func (l *Logger) Critical(format string, args ...interface{}) { l.log(LevelCritical, format, args...) }

// Close drains pending entries and closes the log file.
func (l *Logger) Close() error {
	close(l.entries)
	l.wg.Wait()
	return l.file.Close()
}

var GlobalLogger *Logger

func InitGlobalLogger(level LogLevel, path string) error {
	logger, err := NewLogger(level, path)
	if err != nil {
		return err
	}
	GlobalLogger = logger
	return nil
}

func Debug(format string, args ...interface{}) {
	if GlobalLogger != nil {
		GlobalLogger.Debug(format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if GlobalLogger != nil {
		GlobalLogger.Info(format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if GlobalLogger != nil {
		GlobalLogger.Warn(format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if GlobalLogger != nil {
		GlobalLogger.Error(format, args...)
	}
}

func Critical(format string, args ...interface{}) {
	if GlobalLogger != nil {
		GlobalLogger.Critical(format, args...)
	}
}
