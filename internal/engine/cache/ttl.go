package cache

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTLSeconds is the default snapshot TTL (1 day).
	DefaultTTLSeconds = 86400

	// minutesPerHour is used for duration formatting calculations.
	minutesPerHour = 60

	// hoursPerDay is used for duration formatting calculations.
	hoursPerDay = 24

	// EnvTTLSeconds is the environment variable for overriding the TTL.
	EnvTTLSeconds = "PYBITES_SEARCH_CACHE_TTL"

	// EnvCacheEnabled is the environment variable for enabling/disabling the cache.
	EnvCacheEnabled = "PYBITES_SEARCH_CACHE_ENABLED"
)

// ErrInvalidTTL is returned for negative TTL values.
var ErrInvalidTTL = errors.New("TTL must be zero or a positive number of seconds")

// TTLFromLookup reads EnvTTLSeconds through lookup.
// Values are parsed with ParseTTL; an absent, unparsable or negative value yields fallback.
func TTLFromLookup(lookup func(string) (string, bool), fallback int) int {
	if lookup == nil {
		return fallback
	}
	envVal, ok := lookup(EnvTTLSeconds)
	if !ok || strings.TrimSpace(envVal) == "" {
		return fallback
	}

	ttl, err := ParseTTL(envVal)
	if err != nil {
		return fallback
	}
	return ttl
}

// EnabledFromLookup reads EnvCacheEnabled through lookup.
// An absent or unparsable value yields fallback.
func EnabledFromLookup(lookup func(string) (string, bool), fallback bool) bool {
	if lookup == nil {
		return fallback
	}
	envVal, ok := lookup(EnvCacheEnabled)
	if !ok || envVal == "" {
		return fallback
	}

	enabled, err := strconv.ParseBool(envVal)
	if err != nil {
		return fallback
	}
	return enabled
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "1h", "30m", "5m30s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}

// ParseTTL parses a TTL string in various formats:
// - Integer seconds: "3600".
// - Duration string: "1h", "30m", "1h30m".
func ParseTTL(s string) (int, error) {
	s = strings.TrimSpace(s)

	if seconds, err := strconv.Atoi(s); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
		}
		return seconds, nil
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid TTL format: %w", err)
	}

	seconds := int(duration.Seconds())
	if seconds < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}
