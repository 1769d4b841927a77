// Package countdown derives the remaining time until a vault's unlock
// instant, decomposed the way the presentation layer displays it.
package countdown

import (
	"context"
	"time"

	"github.com/Bhagesh4604/TimeVault1/internal/clock"
)

// Remaining is a whole-unit decomposition of the time left until unlock.
// All components are zero once the unlock instant has passed.
type Remaining struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

func (r Remaining) IsZero() bool {
	return r.Days == 0 && r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// Until computes the remaining duration from now to unlock using floor
// division. A non-positive duration reports all zeros; consumers treat that
// as unlocked.
func Until(unlock, now time.Time) Remaining {
	d := unlock.Sub(now)
	if d <= 0 {
		return Remaining{}
	}

	secs := int64(d / time.Second)
	return Remaining{
		Days:    int(secs / 86400),
		Hours:   int(secs/3600) % 24,
		Minutes: int(secs/60) % 60,
		Seconds: int(secs % 60),
	}
}

// Watch emits the remaining time once immediately and then once per second
// until it reaches zero, emits the zero value and closes the channel. The
// ticker is torn down on context cancellation, so the countdown is bound to
// the watcher's visible lifetime rather than free-running.
func Watch(ctx context.Context, unlock time.Time, clk clock.Clock) <-chan Remaining {
	out := make(chan Remaining, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			rem := Until(unlock, clk.Now())

			select {
			case out <- rem:
			case <-ctx.Done():
				return
			}

			if rem.IsZero() {
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
