package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"

	"github.com/LackyKannauje/college-updates/pkg/config"
)

// Options selects the log format and the optional Sentry sink.
type Options struct {
	Dev         bool
	SentryDSN   string
	Environment string
}

// New builds a logger writing to w: text at debug level in development, JSON at
// info level otherwise. With a Sentry DSN, error records are also sent to Sentry.
// If Sentry cannot be set up, the returned logger still writes to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	var base slog.Handler
	if opts.Dev {
		base = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	if opts.SentryDSN == "" {
		return slog.New(base), nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.SentryDSN,
		Environment:      opts.Environment,
		AttachStacktrace: true,
	})
	if err != nil {
		return slog.New(base), fmt.Errorf("sentry: %w", err)
	}
	return slog.New(slogmulti.Fanout(base, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())), nil
}

// Init builds the process logger from cfg and installs it as the slog default.
func Init(cfg *config.Config) *slog.Logger {
	log, err := New(os.Stdout, Options{
		Dev:         cfg.IsDev(),
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.Env,
	})
	if err != nil {
		log.Warn("error tracking disabled", "error", err)
	}
	slog.SetDefault(log)
	return log
}
