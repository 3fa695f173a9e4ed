package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger: pretty console output in development, JSON
// elsewhere.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
