package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

var base = newLogger(os.Stdout, nil, slog.LevelDebug)

func newLogger(console io.Writer, file io.Writer, level slog.Level) *slog.Logger {
	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{Level: level})
	if file == nil {
		return slog.New(consoleHandler)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(consoleHandler, fileHandler))
}

// Setup replaces the package logger: text to stdout and, when logFile is set,
// JSON lines appended to logFile. The returned func closes the file.
func Setup(logFile string) func() error {
	if logFile == "" {
		base = newLogger(os.Stdout, nil, slog.LevelDebug)
		return func() error { return nil }
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		base = newLogger(os.Stdout, nil, slog.LevelDebug)
		base.Error("failed to open log file, using stdout only", "error", err, "file", logFile)
		return func() error { return nil }
	}

	base = newLogger(os.Stdout, file, slog.LevelDebug)
	return file.Close
}

// SetOutput points the logger at custom writers. Used by tests.
func SetOutput(console, file io.Writer) {
	base = newLogger(console, file, slog.LevelDebug)
}

func Slog() *slog.Logger {
	return base
}

func Info(format string, v ...interface{}) {
	base.Info(fmt.Sprintf(format, v...))
}

func Error(format string, v ...interface{}) {
	base.Error(fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	if os.Getenv("ENVIRONMENT") == "development" {
		base.Debug(fmt.Sprintf(format, v...))
	}
}

func Warn(format string, v ...interface{}) {
	base.Warn(fmt.Sprintf(format, v...))
}
