package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. Configure sets it and mirrors it into
// the zerolog global so packages can log via zlog without a dependency on
// this one.
var Logger zerolog.Logger

// Options override the LOG_LEVEL / LOG_FORMAT environment. Zero values fall
// back to env, then to info/console.
type Options struct {
	Level  string
	Format string // "json" or "console"
	Writer io.Writer
}

func Init() {
	Configure(Options{})
}

func Configure(opts Options) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Level == "" {
		opts.Level = os.Getenv("LOG_LEVEL")
	}
	if opts.Format == "" {
		opts.Format = os.Getenv("LOG_FORMAT")
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	out := opts.Writer
	if opts.Format != "json" {
		out = zerolog.ConsoleWriter{Out: opts.Writer, TimeFormat: time.RFC3339}
	}

	Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	zlog.Logger = Logger
}

// WithRequestID returns a child logger carrying the request id.
func WithRequestID(requestID string) zerolog.Logger {
	return Logger.With().Str("request_id", requestID).Logger()
}
