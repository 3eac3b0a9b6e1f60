package logx

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"homunculus/internal/paths"
)

// Options control logger construction.
type Options struct {
	// Verbose lowers the stderr threshold from warn to debug.
	Verbose bool
}

// New builds a logger that mirrors warnings to stderr and appends the full
// debug stream as JSON to a dated file under the global logs directory. The
// returned closer flushes and closes the file and should be closed before
// exit.
//
// When the log file cannot be opened the logger degrades to stderr only;
// logging never fails the command that asked for it.
func New(gp paths.GlobalPaths, opts Options) (*zap.Logger, io.Closer) {
	consoleLevel := zapcore.WarnLevel
	if opts.Verbose {
		consoleLevel = zapcore.DebugLevel
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)

	file, err := openLogFile(gp)
	if err != nil {
		logger := zap.New(consoleCore)
		logger.Warn("log file unavailable, logging to stderr only", zap.Error(err))
		return logger, closer{logger: logger}
	}

	fileCfg := zap.NewProductionEncoderConfig()
	fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileCfg),
		zapcore.AddSync(file),
		zapcore.DebugLevel,
	)

	logger := zap.New(zapcore.NewTee(consoleCore, fileCore))
	return logger, closer{logger: logger, file: file}
}

func openLogFile(gp paths.GlobalPaths) (*os.File, error) {
	if err := gp.EnsureLogsDir(); err != nil {
		return nil, err
	}
	name := "homunculus-" + time.Now().Format("20060102") + ".log"
	return os.OpenFile(filepath.Join(gp.LogsDir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

type closer struct {
	logger *zap.Logger
	file   *os.File
}

func (c closer) Close() error {
	_ = c.logger.Sync()
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}
