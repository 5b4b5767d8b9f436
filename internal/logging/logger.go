// Package logging builds the process-wide structured logger. A single
// zerolog.Logger is constructed at startup from the configured level and
// passed down explicitly to the harness and admin surface, the way
// Nirmitee-tech-headless-ehr-fhir's middleware wires zerolog — not used as
// a package-global singleton from deep call sites.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to stderr with the given level name
// ("debug", "info", "warn", "error"). An unrecognized level falls back to
// info rather than failing startup over a config typo.
func New(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).
		Level(parsed).
		With().
		Timestamp().
		Str("service", "adt2fhir").
		Logger()
}
