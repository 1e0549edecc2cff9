package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Options struct {
	LogLevel  string `doc:"log from debug, info, warn or error"`
	LogFile   string `doc:"append logs to file"`
	LogFormat string `doc:"format logs as text or json"         default:"text"`
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger configured by options and a function releasing its output.
// Invalid options are reset to their default and reported by the returned logger.
func New(options *Options) (*slog.Logger, func() error) {
	return newLogger(options, os.Stdout)
}

func newLogger(options *Options, stdout io.Writer) (*slog.Logger, func() error) {
	nop := func() error { return nil }

	level, ok := level(options.LogLevel)
	if !ok {
		options.LogLevel = ""
		logger, closer := newLogger(options, stdout)
		logger.Warn("could not parse logger level")
		return logger, closer
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	closer := nop
	switch options.LogFile {
	case "", "-":
		output = stdout
	case os.DevNull:
		return slog.New(slog.DiscardHandler), nop
	default:
		f, err := os.OpenFile(options.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			options.LogFile = ""
			logger, closer := newLogger(options, stdout)
			logger.Warn("could not open logger file", "err", err)
			return logger, closer
		}
		output, closer = f, f.Close
	}

	switch strings.ToLower(options.LogFormat) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts)), closer
	case "text":
		return slog.New(slog.NewTextHandler(output, &opts)), closer
	default:
		closer() //nolint: errcheck // reopened below
		options.LogFormat = "text"
		logger, closer := newLogger(options, stdout)
		logger.Warn("could not parse logger format")
		return logger, closer
	}
}
