// Package restart decides whether the machine rebooted since the last run and
// reopens the remembered folders when it did.
package restart

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/af/internal/model"
)

// ErrNoUptime is returned by Uptime on platforms without a boot clock.
var ErrNoUptime = errors.New("system uptime not available")

// freshBoot is the uptime under which a machine counts as just booted.
const freshBoot = 30 * time.Second

// DetectorParams holds the dependencies of a Detector.
type DetectorParams struct {
	Uptime func() (time.Duration, error)
	Save   func(*model.Store) error
	Logger zerolog.Logger
}

// Detector compares the boot clock against the value stored on the previous run.
type Detector struct {
	uptime func() (time.Duration, error)
	save   func(*model.Store) error
	logger zerolog.Logger
}

// NewDetector creates a Detector. A nil Uptime uses the system clock.
func NewDetector(params DetectorParams) *Detector {
	d := &Detector{
		uptime: params.Uptime,
		save:   params.Save,
		logger: params.Logger,
	}
	if d.uptime == nil {
		d.uptime = Uptime
	}
	return d
}

// Check reports whether the folders in store should be reopened. Whenever the
// uptime is read, the new value is stored and saved before returning.
func (d *Detector) Check(store *model.Store) bool {
	if store.Kind != model.KindFolder || !store.AutoLoadLastFolder || len(store.LastOpenedFolders) == 0 {
		return false
	}

	now := d.uptimeMs()
	last := store.LastSystemUptime
	store.LastSystemUptime = now
	if d.save != nil {
		if err := d.save(store); err != nil {
			d.logger.Warn().Err(err).Msg("failed to save system uptime")
		}
	}

	var reason string
	triggered := false
	switch {
	case last == 0:
		reason = "first run"
	case now < last:
		reason, triggered = "uptime went backwards", true
	case now < freshBoot.Milliseconds() && last > freshBoot.Milliseconds():
		reason, triggered = "fresh boot", true
	default:
		reason = "same boot"
	}

	d.logger.Debug().
		Int64("uptime_ms", now).
		Int64("last_uptime_ms", last).
		Str("reason", reason).
		Bool("reboot", triggered).
		Msg("restart check")
	return triggered
}

// uptimeMs reads the boot clock in milliseconds; a failed read counts as 0.
func (d *Detector) uptimeMs() int64 {
	u, err := d.uptime()
	if err != nil {
		d.logger.Debug().Err(err).Msg("uptime unavailable")
		return 0
	}
	return u.Milliseconds()
}
