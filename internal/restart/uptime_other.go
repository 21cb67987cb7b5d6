//go:build !linux && !windows && !darwin

package restart

import "time"

// Uptime is not available on this platform.
func Uptime() (time.Duration, error) {
	return 0, ErrNoUptime
}
