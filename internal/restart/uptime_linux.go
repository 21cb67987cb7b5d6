//go:build linux

package restart

import (
	"time"

	"golang.org/x/sys/unix"
)

// Uptime returns the time since boot, including time spent suspended.
func Uptime() (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
