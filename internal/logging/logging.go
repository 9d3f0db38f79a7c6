package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"blotter/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points the global logger at the configured sink: the file when one is
// set, stderr otherwise. While a terminal UI holds the screen (interactive)
// stderr output would draw over it, so without a file logging is off. The
// returned closer releases the file.
func Setup(cfg config.LogConfig, interactive bool) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if cfg.File == "" && interactive {
		log.Logger = zerolog.Nop()
		return nopCloser{}, nil
	}
	if cfg.File == "" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}
