package cmd

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/s0up4200/qbitgate/config"
)

// setupLogger configures the zerolog logger. When a log file is configured,
// output is written both to stderr and to a rotating file.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		fd := os.Stderr.Fd()
		tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !tty,
		}
	}

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  10,
			MaxAge:   15,
			Compress: true,
		}
		out = zerolog.MultiLevelWriter(out, rotating)
	}

	return zerolog.New(out).With().Timestamp().Logger()
}
