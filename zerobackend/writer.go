package zerobackend

import (
	"io"
	"os"
	"path/filepath"

	smerrors "github.com/Station-Manager/errors"
	"github.com/Station-Manager/utils"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func (s *Service) initializeWriters() ([]io.Writer, error) {
	const op smerrors.Op = "zerobackend.initializeWriters"
	cfg := s.LoggingConfig

	// If both channels are disabled, fall back to the file writer.
	if !cfg.ConsoleLogging && !cfg.FileLogging {
		cfg.FileLogging = true
	}

	var writers []io.Writer
	if cfg.FileLogging {
		exeName, err := utils.ExecName(true)
		if err != nil {
			return nil, smerrors.New(op).Err(err).Msg("failed to get executable name")
		}
		s.fileWriter = s.rollingFileWriter(exeName)
		writers = append(writers, s.fileWriter)
	}
	if cfg.ConsoleLogging {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    cfg.ConsoleNoColor,
			TimeFormat: cfg.ConsoleTimeFormat,
		})
	}
	return writers, nil
}

// rollingFileWriter returns the lumberjack sink for the log file named
// after the running executable. Rotation limits come straight from config.
func (s *Service) rollingFileWriter(exeName string) *lumberjack.Logger {
	if exeName == "" {
		exeName = "app"
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(s.WorkingDir, s.LoggingConfig.RelLogFileDir, exeName+".log"),
		MaxBackups: s.LoggingConfig.LogFileMaxBackups,
		MaxAge:     s.LoggingConfig.LogFileMaxAgeDays,
		MaxSize:    s.LoggingConfig.LogFileMaxSizeMB,
		Compress:   s.LoggingConfig.LogFileCompress,
	}
}

func multiWriter(writers []io.Writer) io.Writer {
	if len(writers) == 1 {
		return writers[0]
	}
	return io.MultiWriter(writers...)
}
