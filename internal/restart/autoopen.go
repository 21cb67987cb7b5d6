package restart

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/af/internal/launch"
	"github.com/nikbrunner/af/internal/model"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The default uses time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// AutoOpenerParams holds the dependencies of an AutoOpener.
type AutoOpenerParams struct {
	Launcher  launch.Launcher
	Clock     Clock
	BaseDelay time.Duration
	Stagger   time.Duration
	Logger    zerolog.Logger
}

// AutoOpener reopens remembered folders one after another.
type AutoOpener struct {
	launcher launch.Launcher
	clock    Clock
	base     time.Duration
	stagger  time.Duration
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// NewAutoOpener creates an AutoOpener. Zero delays default to 1s base and
// 500ms per folder.
func NewAutoOpener(params AutoOpenerParams) *AutoOpener {
	a := &AutoOpener{
		launcher: params.Launcher,
		clock:    params.Clock,
		base:     params.BaseDelay,
		stagger:  params.Stagger,
		logger:   params.Logger,
	}
	if a.clock == nil {
		a.clock = systemClock{}
	}
	if a.base <= 0 {
		a.base = time.Second
	}
	if a.stagger <= 0 {
		a.stagger = 500 * time.Millisecond
	}
	return a
}

// Run schedules every existing folder in the auto-open list and returns how
// many were scheduled. Folders deleted before their turn are skipped.
func (a *AutoOpener) Run(ctx context.Context, store *model.Store) int {
	entries := store.AutoOpenFolders()
	timers := make([]Timer, 0, len(entries))

	for i, entry := range entries {
		delay := a.base + time.Duration(i)*a.stagger
		path := entry.Path
		a.wg.Add(1)
		timers = append(timers, a.clock.AfterFunc(delay, func() {
			defer a.wg.Done()
			if ctx.Err() != nil || !model.KindFolder.Exists(path) {
				return
			}
			if err := a.launcher.Open(path); err != nil {
				a.logger.Warn().Err(err).Str("path", path).Msg("failed to reopen folder")
				return
			}
			a.logger.Info().Str("path", path).Msg("reopened folder")
		}))
	}

	context.AfterFunc(ctx, func() {
		for _, t := range timers {
			if t.Stop() {
				a.wg.Done()
			}
		}
	})
	return len(entries)
}

// Wait blocks until every scheduled folder has fired or been cancelled.
func (a *AutoOpener) Wait() {
	a.wg.Wait()
}

// StartupParams configures Startup.
type StartupParams struct {
	Delay    time.Duration
	Detector *Detector
	Opener   *AutoOpener
	Store    *model.Store
}

// Startup waits for the host to settle, runs the restart check and, on a
// reboot, reopens the folders and waits for them. It reports whether the
// folders were reopened.
func Startup(ctx context.Context, params StartupParams) (bool, error) {
	if params.Delay > 0 {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(params.Delay):
		}
	}

	if !params.Detector.Check(params.Store) {
		return false, nil
	}
	params.Opener.Run(ctx, params.Store)
	params.Opener.Wait()
	return true, ctx.Err()
}
