package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"incidentserver/internal/config"
)

// Log files written under the configured log directory, one per level.
const (
	InfoFile    = "info.log"
	WarningFile = "warning.log"
	ErrorFile   = "error.log"
)

// Logger is a zap logger that also tees each level into its own file.
type Logger struct {
	*zap.Logger
	logDir string
	files  []*os.File
	mu     sync.Mutex
}

// New creates a Logger writing to stdout and to per-level files in cfg.LogDirectory.
func New(cfg *config.Config) (*Logger, error) {
	if err := os.MkdirAll(cfg.LogDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	l := &Logger{logDir: cfg.LogDirectory}

	minLevel := parseLevel(cfg.LogLevel)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(cfg.LogFormat), zapcore.Lock(os.Stdout), minLevel),
	}

	levels := []struct {
		file    string
		enabled zap.LevelEnablerFunc
	}{
		{InfoFile, func(lvl zapcore.Level) bool { return lvl == zapcore.InfoLevel && minLevel.Enabled(lvl) }},
		{WarningFile, func(lvl zapcore.Level) bool { return lvl == zapcore.WarnLevel && minLevel.Enabled(lvl) }},
		{ErrorFile, func(lvl zapcore.Level) bool { return lvl >= zapcore.ErrorLevel }},
	}

	fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig())
	for _, lvl := range levels {
		file, err := l.openLogFile(filepath.Join(l.logDir, lvl.file))
		if err != nil {
			l.Close()
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(file), lvl.enabled))
	}

	l.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return l, nil
}

// NewNop returns a Logger that discards everything and owns no files.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// openLogFile opens or creates a log file for appending.
func (l *Logger) openLogFile(filename string) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", filename, err)
	}
	l.files = append(l.files, file)
	return file, nil
}

// Dir returns the directory holding the per-level log files.
func (l *Logger) Dir() string {
	return l.logDir
}

// CleanLogs truncates the named log file.
func (l *Logger) CleanLogs(fileName string) error {
	if l.logDir == "" {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.Truncate(filepath.Join(l.logDir, fileName), 0); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", fileName, err)
	}

	l.Info("log file cleared", zap.String("file", fileName))
	return nil
}

// Close flushes the logger and closes its files.
func (l *Logger) Close() error {
	if l.Logger != nil {
		_ = l.Logger.Sync()
	}

	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func consoleEncoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(fileEncoderConfig())
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encCfg)
}

func fileEncoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encCfg
}
