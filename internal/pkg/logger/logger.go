// internal/pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
)

// Setup configures the process-wide logrus logger. Packages that log through
// the logrus package functions share the same format, level and output.
func Setup(cfg *config.Config) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(formatter(cfg.Logging.Format))

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.WithField("level", cfg.Logging.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if out, err := output(cfg.Logging.File); err != nil {
		log.WithError(err).WithField("file", cfg.Logging.File).Warn("log file unavailable, writing to stdout")
	} else {
		log.SetOutput(out)
	}

	return log
}

func formatter(format string) logrus.Formatter {
	if format == "text" {
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339}
	}
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap:        logrus.FieldMap{logrus.FieldKeyMsg: "message"},
	}
}

// output tees stdout into path when one is set
func output(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return io.MultiWriter(os.Stdout, f), nil
}
