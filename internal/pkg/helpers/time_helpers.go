package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Str("value", durationStr).Dur("default", defaultDuration).Msg("Invalid duration string, using default")
		return defaultDuration
	}
	return duration
}
