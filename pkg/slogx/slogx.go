package slogx

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

type Config struct {
	Service string
	Version string
	Env     string // e.g. "dev", "prod"
	Level   string // e.g. "debug", "info", "warn", "error"
	Format  string // e.g. "json", "text"

	// Output defaults to stdout.
	Output io.Writer
}

// New returns a configured slog.Logger and installs it as the default.
func New(cfg Config) *slog.Logger {
	var handler slog.Handler

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		AddSource: cfg.Env == "dev",
		Level:     parseLevel(cfg.Level),
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	logger := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", cfg.Env,
	)

	slog.SetDefault(logger)
	return logger
}

// Nop returns a logger that drops everything. Handy in tests.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Email masks the local part of an address so logs can correlate requests
// without recording who made them: "alice@x.com" becomes "a***@x.com".
func Email(addr string) slog.Attr {
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 {
		return slog.String("email", "***")
	}
	first, size := utf8.DecodeRuneInString(addr)
	if first == utf8.RuneError && size <= 1 {
		return slog.String("email", "***"+addr[at:])
	}
	return slog.String("email", string(first)+"***"+addr[at:])
}

func parseLevel(lvl string) slog.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
