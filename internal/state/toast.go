package state

import (
	"time"

	"github.com/benbjohnson/clock"
)

// toastTimer holds the single pending auto-dismiss task. It is only
// touched from the store's owner loop.
type toastTimer struct {
	clock clock.Clock
	timer *clock.Timer
	token uint64
}

// arm cancels any pending countdown and starts a new one. fire receives
// the token the countdown was armed with.
func (t *toastTimer) arm(d time.Duration, fire func(token uint64)) {
	t.cancel()
	t.token++
	token := t.token
	t.timer = t.clock.AfterFunc(d, func() { fire(token) })
}

// cancel stops the pending countdown, if any.
func (t *toastTimer) cancel() {
	if t.timer == nil {
		return
	}
	t.timer.Stop()
	t.timer = nil
}

// claim reports whether token belongs to the live countdown and, if so,
// retires it.
func (t *toastTimer) claim(token uint64) bool {
	if t.timer == nil || token != t.token {
		return false
	}
	t.timer = nil
	return true
}

// pending reports whether a countdown is armed.
func (t *toastTimer) pending() bool {
	return t.timer != nil
}
