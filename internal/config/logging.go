package config

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the text logger used as slog default. When File is set
// the output is also written to a size-rotated log file; the returned
// closer releases it.
func (l LogConfig) NewLogger(stdout io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	out := stdout
	var closer io.Closer = io.NopCloser(nil)
	if l.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAge:     l.MaxAgeDays,
		}
		out = io.MultiWriter(stdout, rotated)
		closer = rotated
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, closer, nil
}
