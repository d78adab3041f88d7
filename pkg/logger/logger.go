package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

var DefaultConfig = &Config{
	Debug:        false,
	PrettyFormat: false,
}

func safe(opts ...Config) *Config {
	if len(opts) == 0 {
		return DefaultConfig
	}
	return &opts[0]
}

// Init configures the global logger. Output goes to stderr; stdout is kept
// for the advice report.
func Init(opts ...Config) {
	log.Logger = New(os.Stderr, opts...)
}

func New(w io.Writer, opts ...Config) zerolog.Logger {
	conf := safe(opts...)

	var l zerolog.Logger
	if conf.PrettyFormat {
		l = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	} else {
		l = zerolog.New(w).With().Timestamp().Logger()
	}

	if conf.Debug {
		l = l.Level(zerolog.DebugLevel)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}

	return l.With().Caller().Stack().Logger()
}
